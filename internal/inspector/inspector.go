// Package inspector runs the external package inspector (aapt) and turns its
// "dump badging" output into structured data.
package inspector

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/ralt/fdindex/internal/models"
	"github.com/sirupsen/logrus"
)

// Inspector extracts badging information from a package file
type Inspector interface {
	// Badging returns the parsed badging of the package at path together
	// with the raw tool output
	Badging(ctx context.Context, path string) (*Badging, []byte, error)
}

// Runner executes a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command as a subprocess. A non-zero exit status is
// returned as an *exec.ExitError.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return stdout.Bytes(), fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

// AAPT implements Inspector with the Android Asset Packaging Tool
type AAPT struct {
	path    string
	timeout time.Duration
	verbose bool
	run     Runner
}

// Option configures an AAPT inspector
type Option func(*AAPT)

// WithTimeout bounds every inspector invocation
func WithTimeout(d time.Duration) Option {
	return func(a *AAPT) { a.timeout = d }
}

// WithVerbose echoes the raw inspector output
func WithVerbose(v bool) Option {
	return func(a *AAPT) { a.verbose = v }
}

// WithRunner replaces the subprocess runner
func WithRunner(r Runner) Option {
	return func(a *AAPT) { a.run = r }
}

// NewAAPT creates an inspector invoking the aapt binary at path
func NewAAPT(path string, opts ...Option) *AAPT {
	a := &AAPT{
		path: path,
		run:  ExecRunner,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Badging runs "aapt dump badging" on the package
func (a *AAPT) Badging(ctx context.Context, path string) (*Badging, []byte, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	output, err := a.run(ctx, a.path, "dump", "badging", path)
	if a.verbose {
		logrus.Infof("%s badging output:\n%s", path, output)
	}
	if err != nil {
		return nil, output, &models.RepoGenError{
			Type:    models.ErrInspection,
			Package: path,
			Err:     fmt.Errorf("failed to get apk information: %w", err),
		}
	}

	badging, err := ParseBadging(output)
	if err != nil {
		return nil, output, &models.RepoGenError{
			Type:    models.ErrInspection,
			Package: path,
			Err:     err,
		}
	}

	return badging, output, nil
}
