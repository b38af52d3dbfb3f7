package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/gomantics/qoi"
	"github.com/gomantics/qoi/internal/config"
	"github.com/gomantics/qoi/internal/logging"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// inspectResult is the outcome for one file. Exactly one of Metadata and
// Error is set.
type inspectResult struct {
	Path      string             `json:"path"`
	Metadata  *qoi.ImageMetadata `json:"metadata,omitempty"`
	Kind      string             `json:"kind,omitempty"`
	Retryable bool               `json:"retryable,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		asJSON      bool
		workers     int
		maxPixels   uint64
		skipEndMark bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Validate QOI files and print their metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("json") {
				cfg.Output = config.OutputText
				if asJSON {
					cfg.Output = config.OutputJSON
				}
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("max-pixels") {
				cfg.MaxPixels = maxPixels
			}
			if flags.Changed("skip-end-mark") {
				cfg.SkipEndMark = skipEndMark
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			results, err := inspectFiles(cmd.Context(), args, cfg)
			if err != nil {
				return err
			}

			if err := writeResults(cmd.OutOrStdout(), results, cfg.Output); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed inspection", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of files checked concurrently")
	cmd.Flags().Uint64Var(&maxPixels, "max-pixels", 0, "pixel limit, height >= max-pixels/width is rejected (0 = format limit)")
	cmd.Flags().BoolVar(&skipEndMark, "skip-end-mark", false, "do not verify the end marker")

	return cmd
}

// inspectFiles checks paths with at most cfg.Workers files in flight.
// Results keep the order of paths. Per-file failures are reported in the
// results; only cancellation of ctx fails the whole run.
func inspectFiles(ctx context.Context, paths []string, cfg config.Config) ([]inspectResult, error) {
	opts := qoi.Options{MaxPixels: cfg.MaxPixels, SkipEndMark: cfg.SkipEndMark}
	results := make([]inspectResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, path := range paths {
		i, path := i, path // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = inspectFile(path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func inspectFile(path string, opts qoi.Options) inspectResult {
	log := logging.WithFile(path)
	res := inspectResult{Path: path}

	md, err := qoi.MetadataWithOptions(path, opts)
	if err != nil {
		res.Error = err.Error()
		if kind, ok := qoi.KindOf(err); ok {
			res.Kind = kind.String()
			res.Retryable = kind.Retryable()
		}
		log.Warn().Str("kind", res.Kind).Bool("retryable", res.Retryable).Msg(res.Error)
		return res
	}

	log.Debug().Int("width", md.Width).Int("height", md.Height).Int64("size", md.FileSize).Msg("inspected")
	res.Metadata = md
	return res
}

func writeResults(w io.Writer, results []inspectResult, output string) error {
	if output == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	data := pterm.TableData{{"File", "Dimensions", "Layout", "Transfer", "Size", "Result"}}
	for _, r := range results {
		if r.Metadata == nil {
			data = append(data, []string{r.Path, "-", "-", "-", "-", r.Error})
			continue
		}
		md := r.Metadata
		data = append(data, []string{
			r.Path,
			fmt.Sprintf("%dx%d", md.Width, md.Height),
			md.ColorSpace,
			fmt.Sprint(md.Additional["Transfer"]),
			strconv.FormatInt(md.FileSize, 10),
			"ok",
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
