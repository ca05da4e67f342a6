package cache

import "time"

// Recorder observes cache activity. internal/metrics implements it with
// Prometheus collectors.
type Recorder interface {
	Hit(slot string)
	Miss(slot string)
	Rebuild(slot string, took time.Duration, err error)
	Stale(slot string)
	Default(slot string)
}

type nopRecorder struct{}

func (nopRecorder) Hit(string)                           {}
func (nopRecorder) Miss(string)                          {}
func (nopRecorder) Rebuild(string, time.Duration, error) {}
func (nopRecorder) Stale(string)                         {}
func (nopRecorder) Default(string)                       {}
