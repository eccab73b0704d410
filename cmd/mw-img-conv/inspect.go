package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bigbag/mw-img-conv/internal/inspect"
)

func (a *app) runInspect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	for i, path := range args {
		data, err := afero.ReadFile(a.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		report, err := inspect.Inspect(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "File:   %s\n", path)
		inspect.Render(a.out, report)
	}

	return nil
}
