package main

import (
	"fmt"
	"time"

	"github.com/dgallion1/docoutline/internal/batch"
	"github.com/dgallion1/docoutline/internal/output"
	"github.com/dgallion1/docoutline/internal/stats"
	"github.com/spf13/cobra"
)

func batchCmd(flags *rootFlags) *cobra.Command {
	var inputDir, outputDir string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Extract outlines for every document in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := setup(flags)
			if err != nil {
				return err
			}
			defer closer.Close()

			if cmd.Flags().Changed("input") {
				cfg.Batch.InputDir = inputDir
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Type = "local"
				cfg.Output.Dir = outputDir
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx := cmd.Context()
			sink, err := output.New(ctx, cfg.Output)
			if err != nil {
				return err
			}

			rec := stats.NewRecorder(24 * time.Hour)
			d := &batch.Driver{
				InputDir: cfg.Batch.InputDir,
				Sink:     sink,
				Policy:   cfg.OutlinePolicy(),
				Log:      log,
				Stats:    rec,
			}
			sum, err := d.Run(ctx)
			if err != nil {
				return err
			}
			log.Info("latency", "stats", rec.Snapshot())
			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d documents failed", sum.Failed, sum.Found)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory (default from batch.input_dir)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "local output directory (default from output.dir)")
	return cmd
}
