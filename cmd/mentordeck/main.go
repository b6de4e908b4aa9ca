package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"mentordeck/cmd/mentordeck/ui"
	"mentordeck/internal/config"
	"mentordeck/internal/logging"
	"mentordeck/internal/render"
	"mentordeck/internal/schema"
)

var (
	// Global flags
	cfgPath   string
	themeFlag string
	widthFlag int
	narrow    bool
	plain     bool
	verbose   bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mentordeck",
	Short: "mentordeck - terminal renderer for structured mentoring answers",
	Long: `mentordeck renders structured AI mentoring answers in the terminal.

It accepts the versioned block-array response format as well as the
legacy plain-text and technical/mentoring shapes, and degrades to a
labeled error card instead of failing on anything unrecognizable.

Tables render as grids on wide terminals and as per-row cards on narrow
ones, and can be copied to the clipboard or exported as CSV from the
interactive viewer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if themeFlag != "" {
			cfg.Theme = themeFlag
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// renderCmd renders one answer to stdout and exits
var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render an answer to stdout",
	Long: `Reads one answer (JSON or plain text) from the given file, or from
stdin when the file is omitted or "-", and prints the rendered result.

Output is colored when stdout is a terminal; piping the output, or
passing --plain, produces unstyled text with the layout intact.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

// viewCmd opens the interactive viewer
var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open an answer in the interactive viewer",
	Long: `Renders one answer in a full-screen viewer with scrolling and table
actions:

  c      copy the selected table to the clipboard (tab-separated)
  e      export the selected table as table-<id>.csv
  tab    select the next table
  1-9    activate a suggested follow-up
  q      quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := readAnswer(args)
	if err != nil {
		return err
	}
	doc := schema.Normalize(raw)

	styled := !plain && term.IsTerminal(int(os.Stdout.Fd()))
	styles := render.NewStyles(render.PickTheme(cfg.Theme), os.Stdout, styled)
	width := renderWidth()
	breakpoint := cfg.Table.Breakpoint
	if narrow {
		// Force the card presentation regardless of actual width.
		breakpoint = width + 1
	}
	r := &render.Renderer{
		Styles:     styles,
		Width:      width,
		Breakpoint: breakpoint,
		Zebra:      cfg.Table.Zebra,
		Log:        logger,
	}

	fmt.Println(r.Document(doc).Text)
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("view requires a terminal; use 'mentordeck render' for piped output")
	}
	raw, err := readAnswer(args)
	if err != nil {
		return err
	}
	doc := schema.Normalize(raw)

	viewer := ui.New(doc, ui.Options{
		Theme:      cfg.Theme,
		Breakpoint: cfg.Table.Breakpoint,
		Zebra:      cfg.Table.Zebra,
		ExportDir:  cfg.Export.Dir,
		Log:        logger,
	})
	p := tea.NewProgram(
		viewer,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}

// readAnswer reads the answer body from the named file, or stdin when
// no file is given.
func readAnswer(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// renderWidth resolves the one-shot render width: explicit flag, then
// the terminal, then an 80-column default for pipes.
func renderWidth() int {
	if widthFlag > 0 {
		return widthFlag
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: the user config dir)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "color theme: auto, light, or dark")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	renderCmd.Flags().IntVar(&widthFlag, "width", 0, "render width in columns (default: terminal width)")
	renderCmd.Flags().BoolVar(&narrow, "narrow", false, "force the narrow per-row card table presentation")
	renderCmd.Flags().BoolVar(&plain, "plain", false, "disable colors even on a terminal")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(viewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
