package main

import (
	"github.com/spf13/cobra"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the route table in another format",
		Long: `Validate the route table and write it to file, in the format given by
the file extension (.json, .yaml, .yml or .toml).

Example:
  civilian export civilian.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.SaveTo(args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "wrote %s", args[0])
			return nil
		},
	}

	return cmd
}
