package content

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Scanner lists content files below the root of an fs.FS.
type Scanner struct {
	fsys          fs.FS
	ext           string
	includeHidden bool
	logger        interfaces.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithExtension sets the file suffix to match, compared case-insensitively.
func WithExtension(ext string) ScannerOption {
	return func(s *Scanner) {
		if ext = strings.TrimSpace(ext); ext != "" {
			s.ext = strings.ToLower(ext)
		}
	}
}

// WithHidden includes files and directories whose names start with a dot.
func WithHidden(include bool) ScannerOption {
	return func(s *Scanner) {
		s.includeHidden = include
	}
}

// WithScannerLogger sets the logger used for walk warnings.
func WithScannerLogger(logger interfaces.Logger) ScannerOption {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner scans fsys for ".md" files unless configured otherwise.
func NewScanner(fsys fs.FS, opts ...ScannerOption) *Scanner {
	s := &Scanner{fsys: fsys, ext: ".md", logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks the tree depth-first and returns matching files as slash
// separated paths relative to the root. A missing or unreadable root yields
// an empty list; unreadable sub-directories are skipped. Both are logged.
func (s *Scanner) Scan(ctx context.Context) []string {
	logger := s.logger.WithContext(ctx)
	if s.fsys == nil {
		logger.Warn("content.scan_root_missing")
		return nil
	}

	var files []string
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == "." {
				logger.Warn("content.scan_root_unreadable", "error", err)
				return fs.SkipAll
			}
			logger.Warn("content.scan_dir_skipped", "path", p, "error", err)
			if d == nil || d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if p != "." && !s.includeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), s.ext) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		logger.Warn("content.scan_aborted", "error", err, "found", len(files))
	}
	return files
}
