package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/router"
)

func genCmd(flags *globalFlags) *cobra.Command {
	var (
		output string
		pkg    string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Go constants for the mapped path patterns",
		Long: `Generate a Go source file with one constant per mapped resource, holding
its path pattern, and a Handlers map from handler id to pattern.

Constant names are derived from the handler id: "customers.details"
becomes CustomersDetailsPath. The output is deterministic; resources are
listed in matching order.

Examples:
  civilian gen                          # write to stdout
  civilian gen -o routes/routes_gen.go  # write to a file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !token.IsIdentifier(pkg) {
				return errors.New("E160").WithDetailf("--package %q is not a Go identifier", pkg)
			}
			r, _, err := flags.router(cmd)
			if err != nil {
				return err
			}
			code, err := generateRoutes(r.Tree(), pkg)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(code)
				return err
			}
			if err := os.WriteFile(output, code, 0644); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Generated %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&pkg, "package", "routes", "Package name of the generated file")

	return cmd
}

// generateRoutes renders the gofmt-ed source of the generated file.
func generateRoutes(tree *router.Tree, pkg string) ([]byte, error) {
	type entry struct {
		ident   string
		handler string
		path    string
		primary bool
	}

	var entries []entry
	used := make(map[string]int)
	err := tree.Walk(func(res router.Resource) error {
		if !res.HasHandler() {
			return nil
		}
		id := res.HandlerID()
		ident := identFor(id) + "Path"
		if used[ident]++; used[ident] > 1 {
			ident += strconv.Itoa(used[ident])
		}
		first, _ := tree.ByHandler(id)
		entries = append(entries, entry{ident: ident, handler: id, path: res.Path(), primary: first == res})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString("// Code generated by civilian gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	if len(entries) > 0 {
		b.WriteString("// Path patterns of the mapped resources.\nconst (\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "%s = %s\n", e.ident, strconv.Quote(e.path))
		}
		b.WriteString(")\n\n")
	}

	b.WriteString("// Handlers maps each handler id to the pattern of its first declared resource.\n")
	b.WriteString("var Handlers = map[string]string{\n")
	for _, e := range entries {
		if e.primary {
			fmt.Fprintf(&b, "%s: %s,\n", strconv.Quote(e.handler), e.ident)
		}
	}
	b.WriteString("}\n")

	return format.Source(b.Bytes())
}

// identFor turns a handler id into an exported Go identifier: runs of
// letters and digits become capitalized words, everything else separates
// words.
func identFor(handlerID string) string {
	var b strings.Builder
	upper := true
	for _, r := range handlerID {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	s := b.String()
	if s == "" || !unicode.IsUpper([]rune(s)[0]) {
		s = "Route" + s
	}
	return s
}
