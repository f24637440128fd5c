package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nodecanvas/internal/sample"
	"github.com/matzehuels/nodecanvas/pkg/arrange"
	"github.com/matzehuels/nodecanvas/pkg/config"
	"github.com/matzehuels/nodecanvas/pkg/errors"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/pipeline"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// defaultOutput is the base path of rendered files when -o is not given.
const defaultOutput = "scene"

// renderOpts holds the command-line flags for the render command. Zero
// values fall back to the configuration.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // output formats: "svg", "png"
	width    int      // frame width in view units
	height   int      // frame height in view units
	scale    float64  // PNG pixel scale
	arrange  bool     // run graphviz auto-arrange first
	noLabels bool     // hide connection names
	noCache  bool     // bypass the artifact cache entirely
	refresh  bool     // re-render even when cached
}

// renderCommand creates the render command, which paints the sample scene
// to files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the sample scene to SVG or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" {
				opts.formats = parseFormats(formatsStr)
				if err := pipeline.ValidateFormats(opts.formats); err != nil {
					return err
				}
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("arrange") {
				opts.arrange = cfg.Canvas.Arrange
			}
			return c.runRender(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format) or base path (default "`+defaultOutput+`")`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png (comma-separated, default from config)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixel scale")
	cmd.Flags().BoolVar(&opts.arrange, "arrange", false, "auto-arrange nodes with graphviz before rendering")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "hide connection names")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render cached artifacts")

	return cmd
}

// runRender builds the sample scene, optionally arranges it and writes one
// file per format.
func (c *CLI) runRender(ctx context.Context, cfg *config.Config, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	popts, err := renderPipelineOptions(cfg, opts)
	if err != nil {
		return err
	}
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	paths, err := outputPaths(opts.output, popts.Formats)
	if err != nil {
		return err
	}

	runner := c.newRunner(cfg, opts.noCache)
	defer runner.Close()

	s := sample.New(sample.Options{Logger: logger, Compatibility: cfg.CompatibilityPolicy()})
	if opts.arrange {
		if err := arrangeScene(ctx, s, runner); err != nil {
			return err
		}
	}

	result, err := runner.Render(ctx, s, geom.Identity(), popts)
	if err != nil {
		return err
	}

	for _, format := range popts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", strings.Join(popts.Formats, ", "))
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.NodeCount, result.Stats.ConnectionCount, result.CacheInfo.RenderHit)
	return nil
}

// renderPipelineOptions applies the flags on top of the configuration.
func renderPipelineOptions(cfg *config.Config, opts renderOpts) (pipeline.Options, error) {
	popts, err := pipelineOptions(cfg, nil)
	if err != nil {
		return popts, err
	}
	if len(opts.formats) > 0 {
		popts.Formats = opts.formats
	}
	if opts.width > 0 {
		popts.Width = opts.width
	}
	if opts.height > 0 {
		popts.Height = opts.height
	}
	if opts.scale > 0 {
		popts.Scale = opts.scale
	}
	if opts.noLabels {
		popts.ShowLabels = false
	}
	popts.Refresh = opts.refresh
	return popts, nil
}

// arrangeScene runs graphviz over s, sharing the runner's cache.
func arrangeScene(ctx context.Context, s *scene.Scene, runner *pipeline.Runner) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	res, err := arrange.Arrange(ctx, s, svgMeasurer(), arrange.Options{
		Cache:  runner.Cache,
		Keyer:  runner.Keyer,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if res.Cached {
		prog.done(fmt.Sprintf("Arranged %d nodes from cache", s.Len()))
	} else {
		prog.done(fmt.Sprintf("Arranged %d nodes", s.Len()))
	}
	return nil
}

// outputPaths maps each format to its file. A single format writes to
// output as given; several formats treat output as a base path. Known
// format extensions are stripped from the base.
func outputPaths(output string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
	} else {
		base := basePath(output)
		for _, f := range formats {
			paths[f] = base + "." + f
		}
	}
	for _, p := range paths {
		if err := errors.ValidatePath(p); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if errors.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
