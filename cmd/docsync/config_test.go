package main_test

import (
	"testing"
	"time"

	"github.com/fwojciec/docsync"
	main "github.com/fwojciec/docsync/cmd/docsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *main.Config {
	return &main.Config{
		WorkDir:     "/work",
		URL:         docsync.DefaultArchiveURL,
		Subpath:     docsync.DefaultDocsSubpath,
		Timeout:     60 * time.Second,
		Concurrency: 8,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts defaults", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		modify func(c *main.Config)
		field  string
	}{
		{name: "empty url", modify: func(c *main.Config) { c.URL = "" }, field: "URL"},
		{name: "non-http url", modify: func(c *main.Config) { c.URL = "file:///tmp/a.tar.gz" }, field: "URL"},
		{name: "empty subpath", modify: func(c *main.Config) { c.Subpath = "" }, field: "Subpath"},
		{name: "zero timeout", modify: func(c *main.Config) { c.Timeout = 0 }, field: "Timeout"},
		{name: "tiny timeout", modify: func(c *main.Config) { c.Timeout = time.Millisecond }, field: "Timeout"},
		{name: "zero concurrency", modify: func(c *main.Config) { c.Concurrency = 0 }, field: "Concurrency"},
		{name: "huge concurrency", modify: func(c *main.Config) { c.Concurrency = 1000 }, field: "Concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.modify(c)

			err := c.Validate()

			require.Error(t, err)
			assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(err))
			assert.Contains(t, docsync.ErrorMessage(err), tt.field)
		})
	}
}
