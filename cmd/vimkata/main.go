// Package main provides the CLI entrypoint for vimkata.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/vimkata/internal/challenge"
	"github.com/verte-zerg/vimkata/internal/config"
	"github.com/verte-zerg/vimkata/internal/curriculum"
	"github.com/verte-zerg/vimkata/internal/journal"
	"github.com/verte-zerg/vimkata/internal/model"
	"github.com/verte-zerg/vimkata/internal/session"
	"github.com/verte-zerg/vimkata/internal/state"
	"github.com/verte-zerg/vimkata/internal/stats"
	"github.com/verte-zerg/vimkata/internal/statsui"
	"github.com/verte-zerg/vimkata/internal/tui"
)

const defaultStatsWindow = 10

var (
	playEditor     string
	playChallenges string
	playUnlockAll  bool

	statsTopic  string
	statsSince  string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vimkata",
		Short:         "Vim training game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playEditor, "editor", session.DefaultEditor, "editor binary to launch")
	rootCmd.Flags().StringVar(&playChallenges, "challenges", "", "challenge directory (default: bundled)")
	rootCmd.Flags().BoolVar(&playUnlockAll, "unlock-all", false, "skip category unlock gating")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "editor", &playEditor, fileCfg.Play.Editor)
	applyStringConfig(cmd, "challenges", &playChallenges, fileCfg.Play.Challenges)
	applyBoolConfig(cmd, "unlock-all", &playUnlockAll, fileCfg.Play.UnlockAll)

	if _, err := exec.LookPath(playEditor); err != nil {
		return fmt.Errorf("editor %q not found in PATH: %w", playEditor, err)
	}

	challengeDir := playChallenges
	if challengeDir == "" {
		challengeDir = curriculum.DefaultDir()
	}
	topics := curriculum.Load(challengeDir)
	total := 0
	for _, t := range topics {
		total += len(t.Challenges)
	}
	if total == 0 {
		return fmt.Errorf("no challenges found in %s", challengeDir)
	}

	savePath := config.SavePath()
	gameState, err := state.Load(savePath)
	if err != nil {
		// A corrupt save file aborts loudly instead of silently starting
		// from scratch; the user can move the file aside.
		return err
	}
	all := make([]challenge.Challenge, 0, total)
	for _, t := range topics {
		all = append(all, t.Challenges...)
	}
	gameState.MarkStale(all)

	var j *journal.Journal
	if opened, jerr := journal.Open(config.DefaultJournalPath()); jerr != nil {
		logErrf("failed to open attempt journal: %v\n", jerr)
	} else {
		j = opened
		defer func() {
			if cerr := j.Close(); cerr != nil {
				logErrf("failed to close attempt journal: %v\n", cerr)
			}
		}()
	}

	uiModel := tui.NewModel(tui.Options{
		Topics:    topics,
		State:     gameState,
		Journal:   j,
		SavePath:  savePath,
		Editor:    playEditor,
		UnlockAll: playUnlockAll,
	})
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := gameState.Save(savePath); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attempt stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsTopic, "topic", "", "topic filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Topic:  statsTopic,
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsWindow,
	}

	j, err := journal.Open(config.DefaultJournalPath())
	if err != nil {
		return fmt.Errorf("failed to open attempt journal: %w", err)
	}
	defer func() {
		if cerr := j.Close(); cerr != nil {
			logErrf("failed to close attempt journal: %v\n", cerr)
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(cmd.Context(), j, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderSummary(cmd.OutOrStdout(), report)
	}

	uiModel := statsui.NewModel(j, cfg)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vimkata configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# editor = %q          # Editor binary to launch
# challenges = ""        # Challenge directory (default: bundled)
# unlock-all = false     # Skip category unlock gating
`, session.DefaultEditor)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
