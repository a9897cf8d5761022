package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civilian-dev/civilian/pkg/router"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the resource tree",
		Long: `Print the resource tree declared by the route table.

By default the tree is printed as an outline with one resource per line,
path parameters shown with their type and pattern, and the handler id after
"->". With --flat only mapped resources are listed, one path pattern and
handler id per line, in matching order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := flags.router(cmd)
			if err != nil {
				return err
			}
			tree := r.Tree()
			w := cmd.OutOrStdout()
			if !flat {
				return tree.Print(w)
			}
			return tree.Walk(func(res router.Resource) error {
				if !res.HasHandler() {
					return nil
				}
				_, err := fmt.Fprintf(w, "%-40s %s\n", res.Path(), res.HandlerID())
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "List mapped path patterns instead of the outline")

	return cmd
}
