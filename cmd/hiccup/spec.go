package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hiccup/pkg/tagspec"
)

func specCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spec <tagspec>",
		Short: "Explain how a tag spec parses",
		Long: `Parse a tag spec and print the tag name, id, classes and attributes
it produces. A malformed spec prints where parsing stopped.

Examples:
  hiccup spec 'input#search.field[name]q[type]search'
  hiccup spec 'a.button[href]/docs'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSpec(args[0])
		},
	}
}

func (a *app) runSpec(spec string) error {
	tag, attrs, err := tagspec.ParseSpec(spec)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%-8s %s\n", "tag", tag)
	if id, ok := attrs.ID(); ok {
		fmt.Fprintf(a.out, "%-8s %s\n", "id", id)
	}
	if classes := attrs.Classes.Enabled(); len(classes) > 0 {
		fmt.Fprintf(a.out, "%-8s %s\n", "class", strings.Join(classes, " "))
	}
	attrs.Each(func(name string, v tagspec.Value) {
		fmt.Fprintf(a.out, "%-8s %s\n", name, v)
	})
	return nil
}
