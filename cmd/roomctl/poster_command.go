package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/reflective-room/internal/app"
	"github.com/noah-isme/reflective-room/internal/dto"
	"github.com/noah-isme/reflective-room/internal/service"
	"github.com/noah-isme/reflective-room/pkg/export"
)

func newPosterCommand(ctx *commandContext) *cobra.Command {
	var inPath, outPath, title, byline string
	var row int

	cmd := &cobra.Command{
		Use:   "poster",
		Short: "Render a poem as a poster PDF",
		Long:  "Render a poem as a poster PDF, either from a text file (--in, '-' for stdin) or from a stored submission (--row).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(outPath) == "" {
				return errors.New("--out is required")
			}
			if (inPath == "") == (row <= 0) {
				return errors.New("exactly one of --in or --row is required")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			layout := service.PosterLayout{
				LineCapacity: cfg.Poster.LineCapacity,
				WrapWidth:    cfg.Poster.WrapWidth,
				TitleWidth:   cfg.Poster.TitleWidth,
			}

			var resp *dto.PosterResponse
			var posters *service.PosterService
			if row > 0 {
				err = ctx.withStore(cmd, func(store *app.Store) error {
					posters = service.NewPosterService(store.Submissions, export.NewPosterPDF(), layout, nil, ctx.logger)
					resp, err = posters.FromSubmission(cmd.Context(), row)
					return err
				})
			} else {
				posters = service.NewPosterService(nil, export.NewPosterPDF(), layout, nil, ctx.logger)
				var poem string
				poem, err = readPoem(cmd.InOrStdin(), inPath)
				if err == nil {
					resp, err = posters.Pages(dto.PosterRequest{Poem: poem, Title: title, Byline: byline})
				}
			}
			if err != nil {
				return err
			}

			pdf, err := posters.RenderPDF(resp)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
				return fmt.Errorf("write poster: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d page poster to %s\n", len(resp.Pages), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "Poem text file ('-' reads stdin)")
	cmd.Flags().IntVar(&row, "row", 0, "Stored submission row to render")
	cmd.Flags().StringVar(&title, "title", "", "Poster title (with --in)")
	cmd.Flags().StringVar(&byline, "byline", "", "Poster byline (with --in)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination PDF path")
	return cmd
}

func readPoem(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read poem: %w", err)
	}
	return string(data), nil
}
