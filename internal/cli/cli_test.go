package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePopulatesConfig(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{
		"-pipeline", "pipe.hcl",
		"-data", "data.yaml",
		"-mode", "predict",
		"-outputs", "a, b,",
		"-log-level", "debug",
		"-log-format", "text",
	}, &out)

	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "pipe.hcl", cfg.PipelinePath)
	assert.Equal(t, "data.yaml", cfg.DataPath)
	assert.Equal(t, "predict", cfg.Mode)
	assert.Equal(t, []string{"a", "b"}, cfg.Outputs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParsePositionalPipelinePath(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"-data", "d.yaml", "pipe.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "pipe.hcl", cfg.PipelinePath)
	assert.Equal(t, "fit-predict", cfg.Mode)
}

func TestParseNoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseValidation(t *testing.T) {
	t.Run("missing dataset", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"pipe.hcl"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "-data")
	})

	t.Run("bad mode", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-data", "d.yaml", "-mode", "train", "pipe.hcl"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid mode")
	})

	t.Run("bad log format", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-data", "d.yaml", "-log-format", "xml", "pipe.hcl"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})

	t.Run("bad log level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-data", "d.yaml", "-log-level", "loud", "pipe.hcl"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log-level")
	})
}
