package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("no arguments prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, shouldExit, err := Parse(nil, out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, config)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("positional cell path with defaults", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, shouldExit, err := Parse([]string{"cells/"}, out)

		require.NoError(t, err)
		require.False(t, shouldExit)
		require.NotNil(t, config)
		assert.Equal(t, "cells/", config.CellPath)
		assert.Equal(t, ".", config.OutDir)
		assert.Equal(t, "json", config.LogFormat)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, 100, config.MaxProcLines)
		assert.True(t, config.Comments)
		assert.True(t, config.SegIDFunctions)
	})

	t.Run("cell flag wins over positional", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, _, err := Parse([]string{"-cell", "a.hcl", "b.hcl"}, out)

		require.NoError(t, err)
		assert.Equal(t, "a.hcl", config.CellPath)
	})

	t.Run("shorthand flag", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, _, err := Parse([]string{"-c", "a.hcl"}, out)

		require.NoError(t, err)
		assert.Equal(t, "a.hcl", config.CellPath)
	})

	t.Run("all options", func(t *testing.T) {
		out := &bytes.Buffer{}
		config, _, err := Parse([]string{
			"-out", "build",
			"-log-format", "text",
			"-log-level", "debug",
			"-max-proc-lines", "50",
			"-no-comments",
			"-no-segid-functions",
			"a.hcl",
		}, out)

		require.NoError(t, err)
		assert.Equal(t, "build", config.OutDir)
		assert.Equal(t, "text", config.LogFormat)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, 50, config.MaxProcLines)
		assert.False(t, config.Comments)
		assert.False(t, config.SegIDFunctions)
	})

	t.Run("invalid log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-format", "xml", "a.hcl"}, out)

		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-log-level", "trace", "a.hcl"}, out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log-level")
	})

	t.Run("non-positive proc line budget", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"-max-proc-lines", "0", "a.hcl"}, out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxProcLines must be positive")
	})
}
