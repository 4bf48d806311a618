package main

import (
	"regexp"
	"time"

	"github.com/fwojciec/docsync"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var httpURLRe = regexp.MustCompile(`^https?://[^\s/]+`)

// Config holds the validated settings of a sync run.
type Config struct {
	WorkDir     string
	URL         string
	Subpath     string
	Timeout     time.Duration
	Concurrency int
}

// Config builds the sync configuration from the command flags.
func (c *SyncCmd) Config(workDir string) *Config {
	return &Config{
		WorkDir:     workDir,
		URL:         c.URL,
		Subpath:     c.Subpath,
		Timeout:     c.Timeout,
		Concurrency: c.Concurrency,
	}
}

// Validate returns an EINVALID error describing every invalid field.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.WorkDir, validation.Required),
		validation.Field(&c.URL, validation.Required, validation.Match(httpURLRe).Error("must be an http(s) URL")),
		validation.Field(&c.Subpath, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.Concurrency, validation.Required, validation.Min(1), validation.Max(64)),
	)
	if err != nil {
		return docsync.WrapError(docsync.EINVALID, err, "invalid configuration: %v", err)
	}
	return nil
}
