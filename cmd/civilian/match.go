package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func matchCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <path>...",
		Short: "Match request paths against the tree",
		Long: `Match each path the way the router does and print the result.

A complete match prints the handler id and the parsed parameter values.
Otherwise the resource the match stopped at is printed.

Examples:
  civilian match /customers/42/details
  civilian match "/customers?sort=name" /orders/id/5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := flags.router(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, path := range args {
				res, err := r.Match(cmd.Context(), path)
				if err != nil {
					return err
				}
				if res.Complete {
					fmt.Fprintf(w, "%s -> %s %s\n", res.Path, res.HandlerID(), res.Values)
				} else {
					fmt.Fprintf(w, "%s -> no match (stopped at %s)\n", res.Path, res.Resource.Path())
				}
			}
			return nil
		},
	}

	return cmd
}
