package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/fixture"
	"github.com/vango-dev/reconcile/pkg/render"
)

func renderCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print the HTML a tree fixture describes",
		Long: `Serialize every tree in a YAML fixture file to escaped HTML, one tree
per document. Portal content is not rendered in place.

Examples:
  reconcile render page.yaml
  reconcile render page.yaml --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trees, err := fixture.Load(args[0])
			if err != nil {
				return err
			}

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
			out := cmd.OutOrStdout()
			for _, tree := range trees {
				html, err := r.RenderToString(tree)
				if err != nil {
					return err
				}
				if pretty {
					fmt.Fprint(out, html)
					continue
				}
				fmt.Fprintln(out, html)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent block elements")

	return cmd
}
