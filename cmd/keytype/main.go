// Package main provides the CLI entrypoint for keytype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keytype/internal/config"
	"github.com/verte-zerg/keytype/internal/generator"
	"github.com/verte-zerg/keytype/internal/keyboard"
	"github.com/verte-zerg/keytype/internal/model"
	"github.com/verte-zerg/keytype/internal/server"
	"github.com/verte-zerg/keytype/internal/store"
	"github.com/verte-zerg/keytype/internal/tui"
	"github.com/verte-zerg/keytype/internal/typing"
	"github.com/verte-zerg/keytype/internal/wordlist"
)

const (
	defaultLang      = "en"
	defaultWords     = typing.DefaultWordCount
	defaultCaps      = 0.0
	defaultPunct     = 0.0
	defaultAddr      = "127.0.0.1:8080"
	defaultLogFormat = "text"
	defaultLogLevel  = "info"
)

const defaultPunctSet = ".,!?;:"

var (
	practiceLayout   string
	practiceLang     string
	practiceWordList string
	practiceWords    int
	practiceCaps     float64
	practicePunct    float64
	practicePunctSet string

	serveAddr      string
	serveLogFormat string
	serveLogLevel  string

	resolveLayout string
	resolveShift  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keytype",
		Short:         "Layout-aware typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}
	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLayoutCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())

	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practiceLayout, "layout", string(keyboard.QWERTY), "keyboard layout ("+strings.Join(keyboard.LayoutNames(), ", ")+")")
	cmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "language code (default: en)")
	cmd.Flags().StringVar(&practiceWordList, "wordlist", "", "path to a word list file, one word per line")
	cmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per session")
	cmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	cmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	cmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	cfg, err := loadPracticeConfig(cmd, st)
	if err != nil {
		return err
	}
	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}

	gen := generator.New(pool, generatorOptions(cfg))
	machine := typing.NewMachine(gen, cfg.Words)
	m := tui.NewModel(machine, cfg.Layout, st)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve typing sessions over websockets",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addPracticeFlags(cmd)
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&serveLogFormat, "log-format", defaultLogFormat, "log format (text, json)")
	cmd.Flags().StringVar(&serveLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd, nil)
	if err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringConfig(cmd, "log-format", &serveLogFormat, fileCfg.Server.LogFormat)
	applyStringConfig(cmd, "log-level", &serveLogLevel, fileCfg.Server.LogLevel)
	serverCfg := model.ServerConfig{
		Addr:      serveAddr,
		LogFormat: serveLogFormat,
		LogLevel:  serveLogLevel,
	}
	if err := serverCfg.Validate(); err != nil {
		return settingError(cmd, "server", err)
	}

	pool, err := loadPool(cfg)
	if err != nil {
		return err
	}
	logger, err := server.NewLogger(os.Stderr, serverCfg.LogFormat, serverCfg.LogLevel)
	if err != nil {
		return err
	}

	opts := generatorOptions(cfg)
	srv := server.New(server.Options{
		Logger: logger,
		Sampler: func() typing.Sampler {
			return generator.New(pool, opts)
		},
		WordCount: cfg.Words,
		Layout:    cfg.Layout,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, serverCfg.Addr)
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show, list or set the keyboard layout",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported layouts",
		Args:  cobra.NoArgs,
		RunE:  runLayoutListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [layout]",
		Short: "Draw a layout (default: the saved one)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLayoutShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <layout>",
		Short: "Save the layout used for practice",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayoutSetCmd,
	})
	return cmd
}

func runLayoutListCmd(cmd *cobra.Command, _ []string) error {
	active, err := savedLayout(cmd.Context())
	if err != nil {
		return err
	}
	for _, l := range keyboard.Layouts() {
		marker := " "
		if l == active {
			marker = "*"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, l); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runLayoutShowCmd(cmd *cobra.Command, args []string) error {
	var layout keyboard.Layout
	var err error
	if len(args) == 1 {
		layout, err = keyboard.ParseLayout(args[0])
	} else {
		layout, err = savedLayout(cmd.Context())
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	rendered := tui.RenderKeyboard(layout, "", tui.ShouldUseColor(out))
	if _, err := fmt.Fprintf(out, "%s\n%s\n", layout, rendered); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runLayoutSetCmd(cmd *cobra.Command, args []string) error {
	layout, err := keyboard.ParseLayout(args[0])
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
	if err := st.SetLayout(cmd.Context(), layout); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	logErrf("Layout set to %s\n", layout)
	return nil
}

// savedLayout returns the persisted layout, falling back to the config file
// and then QWERTY.
func savedLayout(ctx context.Context) (keyboard.Layout, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return "", fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	layout, ok, err := st.Layout(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read layout: %w", err)
	}
	if ok {
		return layout, nil
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if fileCfg.Practice.Layout != nil {
		layout, err := keyboard.ParseLayout(*fileCfg.Practice.Layout)
		if err != nil {
			return "", fmt.Errorf("practice.layout in %s: %w", config.DefaultConfigPath(), err)
		}
		return layout, nil
	}
	return keyboard.QWERTY, nil
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <code>...",
		Short: "Print the characters physical key codes type on a layout",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runResolveCmd,
	}
	cmd.Flags().StringVar(&resolveLayout, "layout", string(keyboard.QWERTY), "keyboard layout")
	cmd.Flags().BoolVar(&resolveShift, "shift", false, "resolve with shift held")
	return cmd
}

func runResolveCmd(cmd *cobra.Command, args []string) error {
	layout, err := keyboard.ParseLayout(resolveLayout)
	if err != nil {
		return err
	}
	for _, code := range args {
		char := keyboard.ResolveCharacter(code, layout, resolveShift)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%q\n", code, char); err != nil {
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

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := availableLangs(config.DefaultWordListDir())
	if err != nil {
		return err
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// availableLangs merges the bundled languages with word lists found in dir.
func availableLangs(dir string) ([]string, error) {
	seen := map[string]struct{}{}
	for _, lang := range wordlist.BuiltinLangs() {
		seen[lang] = struct{}{}
	}
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		seen[strings.TrimSuffix(name, ".txt")] = struct{}{}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// loadPracticeConfig merges flags, the config file and, when st is given,
// the saved layout. Explicit flags win, then the saved layout, then the file.
func loadPracticeConfig(cmd *cobra.Command, st *store.Store) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "layout", &practiceLayout, fileCfg.Practice.Layout)
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)

	if st != nil && !cmd.Flags().Changed("layout") {
		saved, ok, err := st.Layout(cmd.Context())
		if err != nil {
			logErrf("ignoring saved layout: %v\n", err)
		} else if ok {
			practiceLayout = string(saved)
		}
	}

	layout, err := keyboard.ParseLayout(practiceLayout)
	if err != nil {
		return model.Config{}, settingError(cmd, "practice", &model.FieldError{Field: "layout", Err: err})
	}
	cfg := model.Config{
		Layout:   layout,
		Lang:     strings.ToLower(strings.TrimSpace(practiceLang)),
		WordList: practiceWordList,
		Words:    practiceWords,
		CapsPct:  practiceCaps,
		PunctPct: practicePunct,
		PunctSet: practicePunctSet,
	}
	if err := cfg.Validate(); err != nil {
		return model.Config{}, settingError(cmd, "practice", err)
	}
	return cfg, nil
}

func generatorOptions(cfg model.Config) generator.Options {
	return generator.Options{
		CapsPct:  cfg.CapsPct,
		PunctPct: cfg.PunctPct,
		PunctSet: []rune(cfg.PunctSet),
	}
}

// loadPool reads the word list for cfg: an explicit path, then the user word
// list for the language, then the bundled list. Words that cannot be typed
// are dropped.
func loadPool(cfg model.Config) ([]string, error) {
	words, source, err := readPool(cfg)
	if err != nil {
		return nil, err
	}
	pool := wordlist.Filter(words, wordlist.FilterForLang(cfg.Lang))
	if len(pool) == 0 {
		return nil, fmt.Errorf("word list %s has no typeable words", source)
	}
	if dropped := len(words) - len(pool); dropped > 0 {
		logErrf("skipped %d words from %s that cannot be typed\n", dropped, source)
	}
	return pool, nil
}

func readPool(cfg model.Config) ([]string, string, error) {
	if cfg.WordList != "" {
		words, err := wordlist.LoadWords(cfg.WordList)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load word list %s: %w", cfg.WordList, err)
		}
		return words, cfg.WordList, nil
	}
	userPath := config.DefaultWordListPath(cfg.Lang)
	words, err := wordlist.LoadWords(userPath)
	if err == nil {
		return words, userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to load word list %s: %w", userPath, err)
	}
	words, err = wordlist.Builtin(cfg.Lang)
	if err != nil {
		return nil, "", wordListLoadError(cfg.Lang, userPath, err)
	}
	return words, "builtin " + cfg.Lang, nil
}

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("language %q not found", lang),
		"Run: keytype langs",
		"Or pass a file: keytype --wordlist <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

// settingError names where an invalid setting came from: the flag when it
// was passed, otherwise the config file entry under section.
func settingError(cmd *cobra.Command, section string, err error) error {
	var fieldErr *model.FieldError
	if !errors.As(err, &fieldErr) {
		return err
	}
	if cmd.Flags().Changed(fieldErr.Field) {
		return fmt.Errorf("--%s: %w", fieldErr.Field, fieldErr.Err)
	}
	return fmt.Errorf("%s.%s in %s: %w", section, fieldErr.Field, config.DefaultConfigPath(), fieldErr.Err)
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keytype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# layout = %q        # Keyboard layout (%s); a layout saved with tab or "keytype layout set" wins
# lang = %q              # Language code
# wordlist = ""           # Path to a word list, one word per line
# words = %d              # Words per session
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q      # Punctuation set

[server]
# addr = %q  # Listen address for "keytype serve"
# log-format = %q      # text or json
# log-level = %q        # debug, info, warn or error
`,
		keyboard.QWERTY,
		strings.Join(keyboard.LayoutNames(), ", "),
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultAddr,
		defaultLogFormat,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
