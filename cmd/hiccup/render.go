package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hiccup/internal/errors"
	"github.com/vango-dev/hiccup/pkg/document"
	"github.com/vango-dev/hiccup/pkg/node"
	"github.com/vango-dev/hiccup/pkg/page"
)

func renderCmd(a *app) *cobra.Command {
	var (
		format string
		asPage bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a document to HTML",
		Long: `Render a JSON or MessagePack document to HTML.

The document is read from the file argument, or from standard input
when the argument is "-" or missing. The format follows the file
extension unless --format is given; standard input defaults to JSON.

Examples:
  hiccup render site/index.json
  echo '["p.lead", "Hello"]' | hiccup render
  hiccup render --page --out index.html fragment.msgpack`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return a.runRender(path, format, asPage, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or msgpack")
	cmd.Flags().BoolVarP(&asPage, "page", "p", false, "Wrap a fragment in an HTML5 page")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write HTML to this file instead of standard output")

	return cmd
}

func (a *app) runRender(path, format string, asPage bool, out string) error {
	n, err := a.decode(path, format)
	if err != nil {
		return err
	}

	if p, ok := n.(*page.HTML5); ok {
		n = p.WithDefaults(a.cfg.PageDefaults())
	} else if asPage {
		n = (&page.HTML5{Body: n}).WithDefaults(a.cfg.PageDefaults())
	}

	html, err := a.renderer().RenderToString(n)
	if err != nil {
		return err
	}

	if out == "" {
		_, err := fmt.Fprintln(a.out, html)
		return err
	}
	if err := os.WriteFile(out, []byte(html), 0644); err != nil {
		return errors.New("E101").WithDetail(out).Wrap(err)
	}
	a.logger.Debug("wrote output", "path", out, "bytes", len(html))
	return nil
}

// decode reads the document at path ("-" for standard input).
func (a *app) decode(path, format string) (node.Node, error) {
	if path != "-" && format == "" {
		return document.DecodeFile(path)
	}

	f := document.JSON
	if format != "" {
		var err error
		if f, err = document.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	var r io.Reader = a.in
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.New("E100").WithDetail(path).Wrap(err)
		}
		defer file.Close()
		r = file
	}
	return document.Decode(r, f)
}
