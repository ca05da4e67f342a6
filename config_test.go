package blog_test

import (
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	blog "github.com/goliatone/go-blog"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := blog.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate: %v", err)
	}
	if cfg.Cache.TTL != 2*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.Cache.TTL)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !goerrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var verr *goerrors.Error
	if !goerrors.As(err, &verr) {
		t.Fatalf("expected go-errors error, got %T", err)
	}
	if _, ok := verr.ValidationMap()["logging.Provider"]; !ok {
		t.Fatalf("expected logging.Provider field, got %v", verr.ValidationMap())
	}
}

func TestConfigValidateExtensionNeedsDot(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Content.Extension = "md"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected extension validation error")
	}
}
