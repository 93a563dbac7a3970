// Package main provides the CLI entrypoint for pomotui.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/verte-zerg/pomotui/internal/config"
	"github.com/verte-zerg/pomotui/internal/controller"
	"github.com/verte-zerg/pomotui/internal/event"
	"github.com/verte-zerg/pomotui/internal/logging"
	"github.com/verte-zerg/pomotui/internal/model"
	"github.com/verte-zerg/pomotui/internal/schedule"
	"github.com/verte-zerg/pomotui/internal/stats"
	"github.com/verte-zerg/pomotui/internal/store"
	"github.com/verte-zerg/pomotui/internal/timer"
	"github.com/verte-zerg/pomotui/internal/tui"
)

const (
	defaultTick     = 10 * time.Millisecond
	defaultLogLevel = "info"
)

type timerFlags struct {
	configPath string
	tick       time.Duration
	measured   bool
	logLevel   string
	noHistory  bool
}

type historyFlags struct {
	since string
	last  int
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &timerFlags{}
	rootCmd := &cobra.Command{
		Use:           "pomotui",
		Short:         "Terminal phase-cycling countdown timer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimerCmd(cmd, flags)
		},
	}

	bindTimerFlags(rootCmd, flags)
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func bindTimerFlags(cmd *cobra.Command, flags *timerFlags) {
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultConfigPath(), "config file (.toml, .yaml or .yml)")
	cmd.Flags().DurationVar(&flags.tick, "tick", defaultTick, "countdown tick interval")
	cmd.Flags().BoolVar(&flags.measured, "measured", false, "advance by measured time between ticks")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "do not record finished phases")
}

func runTimerCmd(cmd *cobra.Command, flags *timerFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("pomotui needs an interactive terminal")
	}

	logger, logFile, err := logging.Open(config.DefaultLogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	sessionID := uuid.NewString()
	logger = logger.With("session", sessionID)
	logger.Info("starting", "phases", len(cfg.Phases), "tick", cfg.TickInterval, "measured", cfg.Measured)

	var recorder controller.Recorder
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		recorder = st
	}

	scheduler, err := schedule.New(cfg.Phases)
	if err != nil {
		return err
	}
	return runTimer(cmd.Context(), cfg, scheduler, recorder, sessionID, logger)
}

func runTimer(parent context.Context, cfg model.Config, scheduler *schedule.Scheduler, recorder controller.Recorder, sessionID string, logger *log.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	events := event.NewQueue[event.Event]()
	commands := event.NewQueue[event.Command]()
	defer commands.Close()

	worker := timer.NewWorker(commands, events, timer.Options{
		Interval: cfg.TickInterval,
		Measured: cfg.Measured,
	}, logger.WithPrefix("timer"))
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, event.ErrClosed) {
			logger.Error("timer worker stopped", "err", err)
		}
	}()

	keys := controller.DefaultKeyMap()
	program := tea.NewProgram(tui.NewModel(events, keys, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	ctrl := controller.New(scheduler, commands, controller.Options{
		Renderer:  tui.NewRenderer(program),
		Recorder:  recorder,
		Logger:    logger.WithPrefix("controller"),
		Keys:      &keys,
		SessionID: sessionID,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer events.Close()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer program.Quit()
		// The UI closing the event queue is a normal shutdown.
		if err := ctrl.Run(gctx, events); err != nil && !errors.Is(err, event.ErrClosed) {
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("stopped", "err", err)
		return err
	}
	return nil
}

func resolveConfig(cmd *cobra.Command, flags *timerFlags) (model.Config, error) {
	fileCfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyDurationConfig(cmd, "tick", &flags.tick, fileCfg.Timer.Tick); err != nil {
		return model.Config{}, err
	}
	applyBoolConfig(cmd, "measured", &flags.measured, fileCfg.Timer.Measured)
	applyStringConfig(cmd, "log-level", &flags.logLevel, fileCfg.Timer.LogLevel)
	if fileCfg.Timer.History != nil && !cmd.Flags().Changed("no-history") {
		flags.noHistory = !*fileCfg.Timer.History
	}

	phases, err := config.BuildPhases(fileCfg.Phases)
	if err != nil {
		return model.Config{}, err
	}
	cfg := model.Config{
		Phases:       phases,
		TickInterval: flags.tick,
		Measured:     flags.measured,
		LogLevel:     flags.logLevel,
		History:      !flags.noHistory,
	}
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd(flags *timerFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigCmd(flags.configPath)
		},
	}
}

func runConfigCmd(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(configTemplate(path)), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	flags := &historyFlags{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded phase runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryCmd(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.since, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.last, "last", 0, "limit to last N runs")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, flags *historyFlags) error {
	cfg, err := historyConfig(flags)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, line := range report.Lines(time.Now()) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func historyConfig(flags *historyFlags) (model.HistoryConfig, error) {
	if flags.last < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	cfg := model.HistoryConfig{Last: flags.last}
	if flags.since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", flags.since, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := config.ParseTick(*value)
	if err != nil {
		return err
	}
	*target = d
	return nil
}

func configTemplate(path string) string {
	if config.IsYAML(path) {
		return defaultYAMLTemplate()
	}
	return defaultConfigTemplate()
}

func defaultYAMLTemplate() string {
	return fmt.Sprintf(`# pomotui configuration
# Uncomment a value to enable it. CLI flags override config values.

timer:
  # tick: %q
  # measured: false
  # log-level: %q
  # history: true

# Phases run in order and repeat. Units: s, m or h. Colors are lipgloss colors.
phases:
  - name: Work
    duration: 25
    unit: m
    color: "1"
  - name: Rest
    duration: 5
    unit: m
    color: "4"
`,
		defaultTick.String(),
		defaultLogLevel,
	)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pomotui configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# tick = %q           # Countdown tick interval
# measured = false      # Advance by measured time between ticks
# log-level = %q      # debug, info, warn or error
# history = true        # Record finished phases

# Phases run in order and repeat. Units: s, m or h. Colors are lipgloss colors.
[[phases]]
name = "Work"
duration = 25
unit = "m"
color = "1"

[[phases]]
name = "Rest"
duration = 5
unit = "m"
color = "4"
`,
		defaultTick.String(),
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
