package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/pipeline"
	"github.com/matzehuels/influencegraph/pkg/render"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// renderFlags holds the render command flags that are not config keys.
type renderFlags struct {
	output  string
	noCache bool
	watch   bool
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a graph or analysis report",
		Long: `Render a graph or analysis report to SVG, HTML, PNG or JSON.

The input is graph data (nodes and edges) or an analysis report
(influence_chains), as JSON or YAML. Reports are turned into a graph first;
enterprise nodes get quotes from the quote book.

The html format is a standalone page holding a wide and a compact drawing,
switched by a CSS breakpoint at 768px. With --watch, the input and the quote
book are re-rendered on every change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.setCLIDefaults(&opts)
			opts.Input = args[0]
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the input or quote book changes")
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the flags that shape the canvas.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringP("type", "t", "", "visualization type: lanes (default), nodelink")
	cmd.Flags().Float64("width", 0, "container width (default 1000)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height (default: derived from the viewport)")
	cmd.Flags().Float64Var(&opts.ViewportWidth, "vw", 0, "window width; below 768 selects compact mode")
	cmd.Flags().Float64Var(&opts.ViewportHeight, "vh", 0, "window height; the canvas is at least 70% of it")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "force compact (vertical) mode")
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(
		[]string{graph.VizTypeLanes, graph.VizTypeNodelink}, cobra.ShellCompDirectiveNoFileComp))
}

// addRenderFlags registers the flags that affect artifacts only.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringP("format", "f", "", "output format(s): svg (default), html, png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Selected, "selected", "", "node id to draw as selected")
	cmd.Flags().BoolVar(&opts.Static, "static", false, "omit interaction scripts")
	cmd.Flags().Float64("scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "captions and quotes in node-link labels")
	cmd.Flags().StringVar(&opts.Title, "title", "", "document title (default: report title)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"svg", "html", "png", "json"}, cobra.ShellCompDirectiveNoFileComp))
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.renderOnce(ctx, runner, opts, flags.output); err != nil {
		if !flags.watch {
			return err
		}
		printError("%s", err)
	}
	if !flags.watch {
		return nil
	}
	return c.watch(ctx, watchedFiles(opts), func() {
		prog := newProgress(loggerFromContext(ctx))
		if err := c.renderOnce(ctx, runner, opts, flags.output); err != nil {
			printError("%s", err)
			return
		}
		prog.done("Re-rendered " + filepath.Base(opts.Input))
	})
}

// renderOnce runs the pipeline once and writes every artifact.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(opts.Input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", opts.Input, err)
	}
	spinner.Stop()

	for _, issue := range result.Issues {
		printWarning("%s", issue)
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	return nil
}

// watchedFiles returns the files whose changes trigger a re-render.
func watchedFiles(opts pipeline.Options) []string {
	files := []string{opts.Input}
	if opts.Quotes != "" {
		files = append(files, opts.Quotes)
	}
	return files
}

// watch calls fn after every change to one of files until ctx is done.
// Parent directories are watched because editors often replace files
// instead of writing them in place.
func (c *CLI) watch(ctx context.Context, files []string, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	printInfo("Watching %d file(s) for changes, Ctrl-C to stop", len(files))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			c.Logger.Debug("File changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("Watcher error", "err", err)
		case <-fire:
			fire = nil
			fn()
		}
	}
}

// artifactWriteParams describes a set of rendered artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes one file per format. A single format goes to output
// (or <input>.<format>); several formats share the base path. JSON layouts
// get a .layout.json suffix so they never replace a JSON input.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	for _, f := range p.formats {
		path := base + artifactExt(f)
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		data, ok := p.artifacts[f]
		if !ok {
			return fmt.Errorf("missing %s artifact", f)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func artifactExt(format string) string {
	if format == string(render.FormatJSON) {
		return ".layout.json"
	}
	return "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .html, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if strings.HasSuffix(output, ".layout.json") {
		return strings.TrimSuffix(output, ".layout.json")
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(ext); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
