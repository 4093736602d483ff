// Package main provides the CLI entrypoint for voxpad.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/voxpad/voxpad/internal/config"
	"github.com/voxpad/voxpad/internal/libraryui"
	"github.com/voxpad/voxpad/internal/model"
	"github.com/voxpad/voxpad/internal/settingsui"
	"github.com/voxpad/voxpad/internal/speech"
	"github.com/voxpad/voxpad/internal/stats"
	"github.com/voxpad/voxpad/internal/statsui"
	"github.com/voxpad/voxpad/internal/storage"
	"github.com/voxpad/voxpad/internal/store"
	"github.com/voxpad/voxpad/internal/symbol"
	"github.com/voxpad/voxpad/internal/therapyui"
	"github.com/voxpad/voxpad/internal/tui"
)

const statsTopUsed = 5

var (
	speechEngineFlag string
	speechVoiceFlag  string

	therapyType string
	statsPlain  bool
	clearYes    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "voxpad",
		Short:         "TUI communication board",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runBoardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&speechEngineFlag, "engine", "", "speech synthesizer binary (default: espeak-ng)")
	rootCmd.PersistentFlags().StringVar(&speechVoiceFlag, "voice", "", "voice name passed to the synthesizer")

	rootCmd.AddCommand(newTherapyCmd())
	rootCmd.AddCommand(newPhrasesCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVoicesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newClearCmd())

	return rootCmd
}

func runBoardCmd(cmd *cobra.Command, _ []string) error {
	engine, voice, err := resolveSpeech(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	records := storage.NewService(st)
	prefs := records.Preferences(context.Background())
	if voice != "" {
		prefs.VoiceSettings.Voice = voice
	}

	model := tui.NewModel(symbol.Default(), records, engine, prefs)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newTherapyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "therapy",
		Short: "Run a practice session",
		Args:  cobra.NoArgs,
		RunE:  runTherapyCmd,
	}
	cmd.Flags().StringVar(&therapyType, "type", "", "exercise type: symbol_recognition, sentence_building, or category_matching")
	return cmd
}

func runTherapyCmd(cmd *cobra.Command, _ []string) error {
	kind, err := parseExerciseType(therapyType)
	if err != nil {
		return err
	}
	engine, _, err := resolveSpeech(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	model := therapyui.NewModel(symbol.Default(), storage.NewService(st), engine, kind)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run therapy TUI: %w", err)
	}
	return nil
}

func newPhrasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phrases",
		Short: "Manage saved phrases",
		Args:  cobra.NoArgs,
		RunE:  runPhrasesCmd,
	}
}

func runPhrasesCmd(cmd *cobra.Command, _ []string) error {
	engine, _, err := resolveSpeech(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	model := libraryui.NewModel(storage.NewService(st), engine)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run phrases TUI: %w", err)
	}
	return nil
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Edit voice and board settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsCmd,
	}
}

func runSettingsCmd(cmd *cobra.Command, _ []string) error {
	engine, _, err := resolveSpeech(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	model := settingsui.NewModel(symbol.Default(), storage.NewService(st), engine)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run settings TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print the report to stdout instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	records := storage.NewService(st)
	catalog := symbol.Default()

	if statsPlain {
		return printReport(cmd, records, catalog)
	}

	model := statsui.NewModel(records, catalog)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printReport(cmd *cobra.Command, records *storage.Service, catalog *symbol.Catalog) error {
	out := cmd.OutOrStdout()
	report := stats.BuildReport(context.Background(), records, catalog, statsTopUsed)
	progress := report.Progress

	if _, err := fmt.Fprintf(out, "Sessions: %d\nAverage score: %.1f%%\nSymbols spoken: %d\n\n",
		progress.TotalSessions, progress.AverageScore, report.TotalSpoken); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := fmt.Fprintln(out, "Weekly usage:"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.WeeklyUsagePlot(out, progress.WeeklyUsage, 0); err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}

	if len(progress.ImprovementTrend) > 0 {
		spark := stats.Sparkline(progress.ImprovementTrend, 52)
		if _, err := fmt.Fprintf(out, "\nImprovement trend: %s\n", spark); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if len(report.MostUsed) > 0 {
		if _, err := fmt.Fprintln(out, "\nMost used symbols:"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for i, usage := range report.MostUsed {
			if _, err := fmt.Fprintf(out, "%d. %-14s %d\n", i+1, usage.Symbol.Text, usage.Count); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func newVoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List available voices",
		Args:  cobra.NoArgs,
		RunE:  runVoicesCmd,
	}
}

func runVoicesCmd(cmd *cobra.Command, _ []string) error {
	engine, _, err := resolveSpeech(cmd)
	if err != nil {
		return err
	}
	voices, err := engine.Voices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}
	sort.Slice(voices, func(i, j int) bool {
		if voices[i].Language == voices[j].Language {
			return voices[i].Name < voices[j].Name
		}
		return voices[i].Language < voices[j].Language
	})
	for _, voice := range voices {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", voice.Language, voice.Name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
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

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		return fmt.Errorf("this deletes all preferences, phrases, and progress; re-run with --yes to confirm")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	if err := storage.NewService(st).ClearAll(context.Background()); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Cleared stored preferences, phrases, and progress."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveSpeech builds the speech engine from flags and config, flags
// winning. The returned voice overrides the stored preference when set.
func resolveSpeech(cmd *cobra.Command) (speech.Engine, string, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "engine", &speechEngineFlag, fileCfg.Speech.Engine)
	applyStringConfig(cmd, "voice", &speechVoiceFlag, fileCfg.Speech.Voice)
	return speech.NewESpeakEngine(speechEngineFlag), speechVoiceFlag, nil
}

func parseExerciseType(raw string) (model.ExerciseType, error) {
	switch model.ExerciseType(raw) {
	case "", model.ExerciseSymbolRecognition, model.ExerciseSentenceBuilding, model.ExerciseCategoryMatching:
		return model.ExerciseType(raw), nil
	}
	return "", fmt.Errorf("unknown exercise type %q (use symbol_recognition, sentence_building, or category_matching)", raw)
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# voxpad configuration
# Uncomment a value to enable it. CLI flags override config values.

[speech]
# engine = %q      # Speech synthesizer binary
# voice = "en-us"          # Voice name passed to the synthesizer
`, speech.DefaultBinary)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
