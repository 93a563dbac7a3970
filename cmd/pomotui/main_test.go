package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/pomotui/internal/config"
	"github.com/verte-zerg/pomotui/internal/model"
)

func parseRoot(t *testing.T, args ...string) func() (model.Config, error) {
	t.Helper()
	flags := &timerFlags{}
	cmd := &cobra.Command{Use: "pomotui"}
	bindTimerFlags(cmd, flags)
	require.NoError(t, cmd.ParseFlags(args))
	return func() (model.Config, error) {
		return resolveConfig(cmd, flags)
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	resolve := parseRoot(t, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	cfg, err := resolve()
	require.NoError(t, err)
	require.Equal(t, model.DefaultPhases(), cfg.Phases)
	require.Equal(t, defaultTick, cfg.TickInterval)
	require.False(t, cfg.Measured)
	require.True(t, cfg.History)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
}

func TestResolveConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[timer]
tick = "100ms"
measured = true
history = false

[[phases]]
name = "Deep work"
duration = 90
unit = "m"
`), 0o644))

	resolve := parseRoot(t, "--config", path, "--tick", "20ms")
	cfg, err := resolve()
	require.NoError(t, err)
	require.Equal(t, 20*time.Millisecond, cfg.TickInterval)
	require.True(t, cfg.Measured)
	require.False(t, cfg.History)
	require.Len(t, cfg.Phases, 1)
	require.Equal(t, 5400.0, cfg.Phases[0].TotalSeconds())
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phases:\n  - name: Work\n    duration: 0\n"), 0o644))
	resolve := parseRoot(t, "--config", path)
	_, err := resolve()
	require.ErrorContains(t, err, "duration")

	resolve = parseRoot(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "loud")
	_, err = resolve()
	require.Error(t, err)
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644))
	fileCfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	phases, err := config.BuildPhases(fileCfg.Phases)
	require.NoError(t, err)
	require.Equal(t, model.DefaultPhases(), phases)
	require.Nil(t, fileCfg.Timer.Tick)

	yamlPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(configTemplate(yamlPath)), 0o644))
	fileCfg, err = config.LoadConfig(yamlPath)
	require.NoError(t, err)
	phases, err = config.BuildPhases(fileCfg.Phases)
	require.NoError(t, err)
	require.Equal(t, model.DefaultPhases(), phases)
}

func TestHistoryConfig(t *testing.T) {
	cfg, err := historyConfig(&historyFlags{since: "2026-03-01", last: 5})
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Last)
	require.NotNil(t, cfg.Since)
	require.Equal(t, 2026, cfg.Since.Year())

	_, err = historyConfig(&historyFlags{since: "yesterday"})
	require.Error(t, err)
	_, err = historyConfig(&historyFlags{last: -1})
	require.Error(t, err)
}
