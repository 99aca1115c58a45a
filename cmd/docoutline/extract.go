package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/docoutline/internal/output"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/spf13/cobra"
)

func extractCmd(flags *rootFlags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the outline of a single document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := setup(flags)
			if err != nil {
				return err
			}
			defer closer.Close()
			policy := cfg.OutlinePolicy()
			if err := policy.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			path := args[0]
			p, err := parser.ForFile(path)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := p.Parse(f, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			o := policy.Build(doc)
			log.Debug("extracted", "file", path, "title", o.Title, "entries", len(o.Entries))

			if outDir != "" {
				return output.NewDirSink(outDir).Write(cmd.Context(), output.Name(path), o)
			}
			data, err := output.Encode(o)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write <name>.json into this directory instead of stdout")
	return cmd
}
