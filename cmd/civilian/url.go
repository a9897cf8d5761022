package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/pathparam"
)

func urlCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url <handler> [name=value]...",
		Short: "Build the path of a handler",
		Long: `Build the path of the resource mapped to a handler id.

Each value is written the way it appears in a path and parsed by its path
parameter, so a date parameter takes "2011/10/09" and a preceded parameter
takes its prefix as well.

Examples:
  civilian url customers
  civilian url details customerId=42
  civilian url archive day=2011/10/09`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := flags.router(cmd)
			if err != nil {
				return err
			}
			values, err := parseValues(r.Tree().PathParams(), args[1:])
			if err != nil {
				return err
			}
			path, err := r.URL(args[0], values)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	return cmd
}

// parseValues parses "name=value" arguments with the named parameters.
func parseValues(params *pathparam.Map, args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		name, text, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, errors.New("E160").
				WithDetailf("%q", arg).
				WithSuggestion("Pass values as name=value")
		}
		p := params.Get(name)
		if p == nil {
			return nil, errors.New("E132").
				WithDetailf("no parameter %q", name).
				WithSuggestion("Known parameters: " + strings.Join(params.Names(), ", "))
		}
		v, ok := pathparam.ParseString(p, text)
		if !ok {
			return nil, errors.New("E160").
				WithDetailf("%q is not a valid %s", text, strings.TrimPrefix(pathparam.Detailed(p), "/"))
		}
		values[name] = v
	}
	return values, nil
}
