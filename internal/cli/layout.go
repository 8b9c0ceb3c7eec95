package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing frames.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		store   string
		name    string
		flags   engineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [items]",
		Short: "Compute a timeline frame from work items",
		Long: `Compute a timeline frame from work items.

The layout command loads items from a file (.json, .jsonc, .yaml, .toml, .csv),
a SQLite database (.db, sqlite://) or MongoDB (mongodb://), runs one engine
cycle for the given settings and viewport, and writes the frame as JSON.

With --name the frame is also saved to a frame store (a directory, or a
MongoDB URI via --store) so the HTTP server can serve it.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, store, name)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.frame.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached frame exists")
	cmd.Flags().StringVar(&store, "store", "", "frame store: directory or mongodb:// URI (default: <cache>/frames)")
	cmd.Flags().StringVar(&name, "name", "", "also save the frame under this name in the frame store")
	flags.register(cmd)

	return cmd
}

// runLayout loads the items, computes the frame, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool, storeRef, name string) error {
	printProblems(opts.Settings.Problems())

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, err := openSource(ctx, input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer src.Close()
	attachCache(src, runner)

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing frame...")
	spinner.Start()

	res, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultFramePath(input)
	}
	if err := frame.WriteFile(*res.Frame, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printKeyValue("window", calendar.Format(res.Frame.Window.Start)+" → "+calendar.Format(res.Frame.Window.End))
	printKeyValue("scale", fmt.Sprintf("%s × %g", res.Frame.Scale, res.Frame.Zoom))
	printStats(res.Frame.Stats)

	if name != "" {
		st, err := openFrameStore(ctx, storeRef)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(ctx, name, *res.Frame); err != nil {
			return fmt.Errorf("save frame %q: %w", name, err)
		}
		printDetail("Saved as %q", name)
	}

	printNewline()
	printNextStep("Inspect rows", appName+" rows "+input)
	return nil
}

// defaultFramePath derives <input>.frame.json; database URIs write to the
// working directory.
func defaultFramePath(input string) string {
	if strings.Contains(input, "://") {
		return "roadmap.frame.json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".frame.json"
}

// openFrameStore opens a directory or MongoDB frame store.
func openFrameStore(ctx context.Context, ref string) (frame.Store, error) {
	if strings.HasPrefix(ref, "mongodb://") || strings.HasPrefix(ref, "mongodb+srv://") {
		st, err := frame.ConnectMongoStore(ctx, ref, appName, "frames")
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	if ref == "" {
		dir, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		ref = filepath.Join(dir, "frames")
	}
	st, err := frame.NewDirStore(ref)
	if err != nil {
		return nil, err
	}
	return st, nil
}
