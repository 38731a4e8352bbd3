// Package main provides the CLI entrypoint for tuinote.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuinote/internal/config"
	"github.com/verte-zerg/tuinote/internal/generator"
	"github.com/verte-zerg/tuinote/internal/midiexport"
	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/pitch"
	"github.com/verte-zerg/tuinote/internal/pitchlist"
	"github.com/verte-zerg/tuinote/internal/quiz"
	"github.com/verte-zerg/tuinote/internal/staff"
	"github.com/verte-zerg/tuinote/internal/store"
	"github.com/verte-zerg/tuinote/internal/tui"
)

const (
	defaultMode       = pitch.GenericName
	defaultWeakTop    = 4
	defaultWeakFactor = 2.0
	defaultScale      = "compact"
)

var (
	practiceMode         string
	practicePitches      string
	practiceRounds       int
	practiceManual       bool
	practiceCorrectDelay time.Duration
	practiceWrongDelay   time.Duration
	practiceFocusWeak    bool
	practiceWeakTop      int
	practiceWeakFactor   float64
	practiceExportMIDI   string
	practiceSeed         int64

	layoutClef  string
	layoutMode  string
	layoutScale string

	pitchesMode  string
	pitchesName  string
	pitchesForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuinote",
		Short:         "TUI note-reading trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "drill mode: "+strings.Join(pitch.Names(), ", "))
	rootCmd.Flags().StringVar(&practicePitches, "pitches", "", "custom pitch list (file path or name under the pitches dir)")
	rootCmd.Flags().IntVar(&practiceRounds, "rounds", quiz.DefaultRounds, "rounds per drill")
	rootCmd.Flags().BoolVar(&practiceManual, "manual", false, "advance with enter instead of a timer")
	rootCmd.Flags().DurationVar(&practiceCorrectDelay, "correct-delay", quiz.DefaultCorrectDelay, "feedback time after a correct answer")
	rootCmd.Flags().DurationVar(&practiceWrongDelay, "wrong-delay", quiz.DefaultWrongDelay, "feedback time after a wrong answer")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias later drills toward missed pitches")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak pitches to focus on (0 = all)")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "extra weight for weak pitches")
	rootCmd.Flags().StringVar(&practiceExportMIDI, "export-midi", "", "write the drilled pitches to this MIDI file on exit")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed (0 = time based)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newModesCmd())
	rootCmd.AddCommand(newLayoutCmd())
	rootCmd.AddCommand(newPitchesCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyStringConfig(cmd, "pitches", &practicePitches, fileCfg.Practice.Pitches)
	applyIntConfig(cmd, "rounds", &practiceRounds, fileCfg.Practice.Rounds)
	applyBoolConfig(cmd, "manual", &practiceManual, fileCfg.Practice.Manual)
	applyMillisConfig(cmd, "correct-delay", &practiceCorrectDelay, fileCfg.Practice.CorrectDelayMs)
	applyMillisConfig(cmd, "wrong-delay", &practiceWrongDelay, fileCfg.Practice.WrongDelayMs)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)

	cfg := model.Config{
		Mode:         practiceMode,
		PitchesPath:  practicePitches,
		Rounds:       practiceRounds,
		Manual:       practiceManual,
		CorrectDelay: practiceCorrectDelay,
		WrongDelay:   practiceWrongDelay,
		FocusWeak:    practiceFocusWeak,
		WeakTop:      practiceWeakTop,
		WeakFactor:   practiceWeakFactor,
		ExportMIDI:   practiceExportMIDI,
		Seed:         practiceSeed,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	profile, err := resolveProfile(cfg)
	if err != nil {
		return err
	}

	st, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open round log: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close round log: %v\n", cerr)
		}
	}()

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewSeeded(cfg.Seed)
	}

	drill, err := tui.NewModel(cfg, st, gen, profile, staff.Terminal)
	if err != nil {
		return fmt.Errorf("failed to start drill: %w", err)
	}
	program := tea.NewProgram(drill, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if cfg.ExportMIDI != "" {
		return exportDrilled(cfg.ExportMIDI, drill.Drilled())
	}
	return nil
}

func exportDrilled(path string, pitches []pitch.Pitch) error {
	if err := midiexport.Write(path, pitches, midiexport.DefaultBPM); err != nil {
		if errors.Is(err, midiexport.ErrNoPitches) {
			logErrln("no answered pitches; skipping MIDI export")
			return nil
		}
		return fmt.Errorf("failed to export MIDI: %w", err)
	}
	logErrf("Wrote %d pitches to %s\n", len(pitches), path)
	return nil
}

func resolveProfile(cfg model.Config) (pitch.Profile, error) {
	if cfg.PitchesPath != "" {
		path := config.ResolvePitchListPath(cfg.PitchesPath)
		profile, err := pitchlist.LoadProfile(path)
		if err != nil {
			return nil, pitchListLoadError(cfg.PitchesPath, path, err)
		}
		return profile, nil
	}
	return pitch.Lookup(cfg.Mode)
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

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List drill modes and custom pitch lists",
		Args:  cobra.NoArgs,
		RunE:  runModesCmd,
	}
}

func runModesCmd(cmd *cobra.Command, _ []string) error {
	return writeModes(cmd.OutOrStdout(), config.DefaultPitchListDir())
}

func writeModes(w io.Writer, pitchListDir string) error {
	for _, p := range pitch.Profiles() {
		if _, err := fmt.Fprintf(w, "%-8s %s\n", p.Name(), pitch.Describe(p)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	entries, err := os.ReadDir(pitchListDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read pitch list directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-8s --pitches %s\n", name, name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <pitch>",
		Short: "Print the staff geometry of a pitch",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayoutCmd,
	}
	cmd.Flags().StringVar(&layoutClef, "clef", "treble", "clef: treble or bass")
	cmd.Flags().StringVar(&layoutMode, "mode", defaultMode, "mode whose stem rule applies")
	cmd.Flags().StringVar(&layoutScale, "scale", defaultScale, "layout scale: compact, large or terminal")
	return cmd
}

func runLayoutCmd(cmd *cobra.Command, args []string) error {
	return writeLayout(cmd.OutOrStdout(), args[0], layoutClef, layoutMode, layoutScale)
}

func writeLayout(w io.Writer, pitchArg, clefArg, modeArg, scaleArg string) error {
	clef, err := pitch.ParseClef(clefArg)
	if err != nil {
		return err
	}
	p, err := pitch.ParsePitch(pitchArg, clef)
	if err != nil {
		return err
	}
	profile, err := pitch.Lookup(modeArg)
	if err != nil {
		return err
	}
	scale, err := staff.LookupScale(scaleArg)
	if err != nil {
		return err
	}
	cfg, err := staff.ForProfile(profile, clef, scale)
	if err != nil {
		return err
	}
	g := staff.Compute(p, cfg)

	dir := "up"
	if g.Stem.Down {
		dir = "down"
	}
	lines := []string{
		fmt.Sprintf("pitch:    %s (%s clef, %s scale)", p, clef, scale.Name),
		fmt.Sprintf("steps:    %d from %s", g.StepDiff, cfg.Bottom),
		fmt.Sprintf("note y:   %s", formatY(g.NoteY)),
		fmt.Sprintf("ledgers:  %s", formatYs(g.Ledgers)),
		fmt.Sprintf("stem:     %s, %s side, to y=%s", dir, g.Stem.Side, formatY(g.StemEnd())),
		fmt.Sprintf("clef y:   %s", formatY(g.ClefY)),
		fmt.Sprintf("staff:    %s", formatYs(cfg.LineYs())),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func formatY(y float64) string {
	return fmt.Sprintf("%g", y)
}

func formatYs(ys []float64) string {
	if len(ys) == 0 {
		return "none"
	}
	parts := make([]string, len(ys))
	for i, y := range ys {
		parts[i] = formatY(y)
	}
	return strings.Join(parts, " ")
}

func newPitchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitches",
		Short: "Write a mode's pitches to an editable pitch list",
		Args:  cobra.NoArgs,
		RunE:  runPitchesCmd,
	}
	cmd.Flags().StringVar(&pitchesMode, "mode", defaultMode, "mode to copy")
	cmd.Flags().StringVar(&pitchesName, "name", "", "list name (default: the mode name)")
	cmd.Flags().BoolVar(&pitchesForce, "force", false, "overwrite an existing list")
	return cmd
}

func runPitchesCmd(_ *cobra.Command, _ []string) error {
	profile, err := pitch.Lookup(pitchesMode)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(pitchesName)
	if name == "" {
		name = profile.Name()
	}
	outPath := config.ResolvePitchListPath(name)
	if !pitchesForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("pitch list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat pitch list: %w", err)
		}
	}
	if err := writePitchList(outPath, profile); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logErrf("Wrote %s\n", outPath)
	return nil
}

func writePitchList(path string, profile pitch.Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create pitch list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "pitches-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp pitch list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := fmt.Fprintf(writer, "# %s pitches: PITCH CLEF LABEL\n", profile.Name()); err != nil {
		return fmt.Errorf("failed to write pitch list: %w", err)
	}
	// Pitch lists carry one label per note head; the first one wins.
	written := map[pitch.Pitch]struct{}{}
	for _, p := range profile.Domain() {
		head := p.WithLabel("")
		if _, ok := written[head]; ok {
			continue
		}
		written[head] = struct{}{}
		if _, err := fmt.Fprintf(writer, "%s %s %s\n", p, p.Clef, p.Label); err != nil {
			return fmt.Errorf("failed to write pitch list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush pitch list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close pitch list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write pitch list: %w", err)
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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

func applyMillisConfig(cmd *cobra.Command, name string, target *time.Duration, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = time.Duration(*value) * time.Millisecond
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuinote configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q           # Drill mode: %s
# pitches = ""              # Custom pitch list; overrides mode
# rounds = %d               # Rounds per drill
# manual = false            # Advance with enter instead of a timer
# correct-delay-ms = %d    # Feedback time after a correct answer
# wrong-delay-ms = %d     # Feedback time after a wrong answer
# focus-weak = false        # Bias later drills toward missed pitches
# weak-top = %d              # Number of weak pitches to focus on (0 = all)
# weak-factor = %.1f        # Extra weight for weak pitches
`,
		defaultMode,
		strings.Join(pitch.Names(), ", "),
		quiz.DefaultRounds,
		quiz.DefaultCorrectDelay.Milliseconds(),
		quiz.DefaultWrongDelay.Milliseconds(),
		defaultWeakTop,
		defaultWeakFactor,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Rounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if cfg.CorrectDelay < 0 {
		return fmt.Errorf("--correct-delay must be >= 0")
	}
	if cfg.WrongDelay < 0 {
		return fmt.Errorf("--wrong-delay must be >= 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.PitchesPath == "" && strings.TrimSpace(cfg.Mode) == "" {
		return fmt.Errorf("--mode must not be empty")
	}
	return nil
}

func pitchListLoadError(name, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load pitch list: %v", err),
		fmt.Sprintf("expected pitch list at: %s", path),
		fmt.Sprintf("pitch list %q not usable", name),
		"Run: tuinote modes",
		"Create one: tuinote pitches --mode violin --name " + name,
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
