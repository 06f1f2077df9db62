package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackplot/stackplot/pkg/cache"
	"github.com/stackplot/stackplot/pkg/chart"
	"github.com/stackplot/stackplot/pkg/pipeline"
	"github.com/stackplot/stackplot/pkg/source"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path ("-" for stdout)
	formats     []string
	configFile  string  // TOML render configuration
	width       float64 // canvas width in pixels
	height      float64 // canvas height in pixels
	ticks       int     // desired value-axis tick count
	gap         float64 // bar gap ratio in [0, 1)
	fontFamily  string
	autoFill    bool // generate colors for keys the palette misses
	noGridlines bool
	background  string // background fill (hex), transparent when empty
	all         bool   // render every chart in a directory argument
	noCache     bool
	cacheDir    string
}

// newRenderCmd creates the render command for generating chart outputs.
// It accepts chart documents (JSON or TOML), "-" for stdin, or a directory.
// A directory argument opens an interactive picker unless --all is set.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file|dir...]",
		Short: "Render stacked bar charts to SVG, PNG, PDF, or JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or '-' for stdout (single format only)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "TOML render configuration file")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height in pixels (default 600)")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 0, "desired value-axis tick count (default 6)")
	cmd.Flags().Float64Var(&opts.gap, "gap", 0, "bar gap ratio in [0, 1) (default 0.25)")
	cmd.Flags().StringVar(&opts.fontFamily, "font-family", "", "font family for all chart text")
	cmd.Flags().BoolVar(&opts.autoFill, "auto-fill", false, "generate colors for segment names the palette misses")
	cmd.Flags().BoolVar(&opts.noGridlines, "no-gridlines", false, "omit horizontal gridlines")
	cmd.Flags().StringVar(&opts.background, "background", "", "background fill color (hex), transparent when empty")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every chart in a directory argument")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "artifact cache directory (default: user cache dir)")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// runRender expands the arguments into chart files and renders each one.
func runRender(ctx context.Context, args []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	inputs, err := expandInputs(args, opts.all)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return nil // picker dismissed
	}
	if opts.output == "-" && (len(inputs) > 1 || len(opts.formats) > 1) {
		return fmt.Errorf("stdout output requires a single input and a single format")
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	cfg = applyFlagOverrides(cfg, opts)

	c, err := openCache(opts)
	if err != nil {
		return err
	}
	defer c.Close()
	runner := pipeline.NewRunner(c, nil)

	prog := newProgress(logger)
	var spin *spinner
	if len(inputs) > 1 {
		spin = startSpinner(ctx, fmt.Sprintf("Rendering %d charts", len(inputs)))
	}

	for _, input := range inputs {
		if err := renderOne(ctx, runner, input, cfg, opts); err != nil {
			if spin != nil {
				spin.Stop()
			}
			printError("Failed to render %s", input)
			return err
		}
	}
	if spin != nil {
		spin.Stop()
	}
	if len(inputs) > 1 {
		prog.done(fmt.Sprintf("Rendered %d charts", len(inputs)))
	}
	return nil
}

// renderOne runs the pipeline for a single input and writes its artifacts.
func renderOne(ctx context.Context, runner *pipeline.Runner, input string, cfg chart.Config, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:       input,
		Config:      cfg,
		Formats:     opts.formats,
		NoGridlines: opts.noGridlines,
		Background:  opts.background,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	title := result.Chart.Title
	if title == "" {
		title = filepath.Base(input)
	}
	printSuccess("%s", title)
	if result.Layout.Scale.Degenerate {
		printWarning("All values are zero; rendered with a fallback scale")
	}
	printStats(result.Stats.Categories, result.Stats.LegendKeys, result.CacheInfo.AllHit())

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// outputPath derives the destination file for one format.
// With an explicit output and a single format, the output is used verbatim;
// otherwise the format extension replaces the input's.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		if input == "-" {
			base = "chart"
		} else {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

// expandInputs resolves command arguments into chart file paths.
// Directory arguments expand to their supported files (--all) or open the
// interactive picker.
func expandInputs(args []string, all bool) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if arg == "-" {
			inputs = append(inputs, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}

		files, err := chartFiles(arg)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no chart files in %s", arg)
		}
		if all {
			inputs = append(inputs, files...)
			continue
		}
		picked, err := pickChart(files)
		if err != nil {
			return nil, err
		}
		if picked != "" {
			inputs = append(inputs, picked)
		}
	}
	return inputs, nil
}

// chartFiles lists the supported chart documents in dir, sorted by name.
func chartFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if source.Supported(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// openCache builds the artifact cache from the render flags.
func openCache(opts *renderOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	dir := opts.cacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = filepath.Join(base, "stackplot")
	}
	return cache.NewFileCache(dir)
}
