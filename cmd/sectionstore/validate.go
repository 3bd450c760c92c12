package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the validate command
func (cli *CLI) newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script.yaml>",
		Short: "Check a mutation script for structural problems without replaying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadScript(args[0])
			if err != nil {
				return NewScriptError("validate script", args[0], err)
			}

			out := cmd.OutOrStdout()
			name := doc.Name
			if name == "" {
				name = args[0]
			}
			_, _ = fmt.Fprintf(out, "%s: ok (%d sections, %d ops)\n", name, len(doc.Sections), len(doc.Ops))
			return nil
		},
	}
}
