package main

import (
	"github.com/spf13/cobra"
)

func checkCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the route table",
		Long: `Load the route table, validate its parameters and build the tree.

Any error is reported with its code, the file it was found in and a hint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cfg, err := flags.router(cmd)
			if err != nil {
				return err
			}
			tree := r.Tree()
			success(cmd.OutOrStdout(), "%s: %d resources, %d handlers, %d parameters",
				cfg.Path(), tree.Len(), tree.Handlers(), tree.PathParams().Len())
			return nil
		},
	}

	return cmd
}
