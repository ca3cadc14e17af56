package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		args []string
		cmd  string
	}{
		{[]string{}, "sim"},
		{[]string{"sim", "--headless", "--seed", "7"}, "sim"},
		{[]string{"controller", "--transport", "serial", "--target", "/dev/ttyACM0"}, "controller"},
		{[]string{"display", "--listen", ":9090"}, "display"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			var cli CLI
			parser, err := kong.New(&cli, kong.Vars{"version": version})
			require.NoError(t, err)

			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.cmd, ctx.Command())
		})
	}
}

func TestGlobalsLoad(t *testing.T) {
	g := Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), LogLevel: "debug"}

	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	g.LogLevel = "chatty"
	_, err = g.load()
	assert.Error(t, err)
}

func TestNewLoggerToFile(t *testing.T) {
	g := Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	cfg, err := g.load()
	require.NoError(t, err)
	cfg.LogFile = filepath.Join(t.TempDir(), "mole.log")

	logger, closer, err := newLogger(cfg, true)
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
