package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jsvensson/iconlookup"
	"github.com/jsvensson/iconlookup/internal/config"
	"github.com/jsvensson/iconlookup/internal/engine"
	"github.com/jsvensson/iconlookup/internal/format"
	"github.com/jsvensson/iconlookup/internal/matcher"
	"github.com/jsvensson/iconlookup/internal/roots"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagConfig     string
	flagVerbose    int
	flagTheme      string
	flagSize       int
	flagScale      int
	flagScheme     string
	flagSVG        bool
	flagSynthesize bool
	flagMatch      string
	flagCheck      bool
	flagFormat     string
	version        = "dev" // Injected at build time via ldflags
)

// errFailed makes the process exit with status 1 after the command already
// reported why.
var errFailed = errors.New("failed")

var log = commonlog.GetLogger("iconlookup")

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:               "iconlookup",
	Short:             "Resolve icon names to files in freedesktop icon themes",
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

var findCmd = &cobra.Command{
	Use:   "find NAME",
	Short: "Print the file for an icon name",
	Long:  "Resolve an icon name to a file. Exits with status 1 when nothing matches.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List installed themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

var dirsCmd = &cobra.Command{
	Use:   "dirs THEME",
	Short: "Show the locations and directories of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runDirs,
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Validate index.theme files",
	Long:  "Decode index.theme files and print every problem found. Exits with status 1 when any file has problems.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE...",
	Short: "Format configuration files",
	Long:  "Format one or more HCL configuration files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "path to configuration file")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")

	findCmd.Flags().StringVar(&flagTheme, "theme", config.DefaultTheme, "theme searched first")
	findCmd.Flags().IntVar(&flagSize, "size", config.DefaultSize, "icon size in logical pixels")
	findCmd.Flags().IntVar(&flagScale, "scale", config.DefaultScale, "display scale factor")
	findCmd.Flags().StringVar(&flagScheme, "scheme", "closest", "size scheme for inexact matches: closest, larger or smaller")
	findCmd.Flags().BoolVar(&flagSVG, "svg", false, "only return .svg files")
	findCmd.Flags().BoolVar(&flagSynthesize, "synthesize", false, "index theme folders that have no index.theme")
	findCmd.Flags().StringVar(&flagFormat, "format", "", "Go template for the result, e.g. '{{.Name}}.{{.Ext}}'")
	dirsCmd.Flags().StringVar(&flagFormat, "format", "", "Go template for each directory, e.g. '{{.Name}} {{.Min}}-{{.Max}}'")

	themesCmd.Flags().StringVar(&flagMatch, "match", "", "only list themes matching a glob pattern")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(dirsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadOptional(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	verbosity := cfg.LogVerbosity
	if flagVerbose > 0 {
		verbosity = flagVerbose
	}
	var logFile *string
	if cfg.LogFile != "" {
		logFile = &cfg.LogFile
	}
	commonlog.Configure(verbosity, logFile)
	log.Debugf("using config %s", flagConfig)
	return nil
}

// searchRoots returns the configured roots, or the XDG defaults.
func searchRoots() []string {
	if len(cfg.SearchRoots) > 0 {
		return roots.Resolve(cfg.SearchRoots)
	}
	return roots.Default()
}

func openCatalog(synthesize bool) *iconlookup.Catalog {
	return iconlookup.NewCatalog(searchRoots(), synthesize)
}

func runFind(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	theme := cfg.Theme
	if flags.Changed("theme") {
		theme = flagTheme
	}
	size := cfg.Size
	if flags.Changed("size") {
		size = flagSize
	}
	scale := cfg.Scale
	if flags.Changed("scale") {
		scale = flagScale
	}
	scheme := cfg.Scheme
	if flags.Changed("scheme") {
		s, err := matcher.ParseSizeScheme(flagScheme)
		if err != nil {
			return err
		}
		scheme = s
	}
	if size < 1 || scale < 1 {
		return fmt.Errorf("size and scale must be at least 1")
	}

	c := openCatalog(cfg.Synthesize || flagSynthesize)
	if !c.Has(theme) {
		fmt.Fprintf(cmd.ErrOrStderr(), "theme %q not found%s\n", theme, didYouMean(theme, c.Names()))
	}

	b := iconlookup.Lookup(args[0]).
		WithTheme(theme).
		WithSize(size).
		WithScale(scale).
		WithSizeScheme(scheme).
		WithCatalog(c)
	if cfg.ForceSVG || flagSVG {
		b = b.ForceSVG()
	}

	path, ok := b.Find()
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "no icon named %q\n", args[0])
		return errFailed
	}
	if flagFormat == "" {
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	e, err := engine.New(flagFormat)
	if err != nil {
		return err
	}
	return e.Execute(cmd.OutOrStdout(), engine.Icon{
		Name:  args[0],
		Path:  path,
		Theme: theme,
		Size:  size,
		Scale: scale,
	})
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		changed, err := format.File(path, !flagCheck)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			hasErrors = true
			continue
		}
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			needsFormatting = true
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		return errFailed
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
