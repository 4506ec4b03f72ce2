package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/tour/pkg/render"
	"github.com/vango-dev/tour/pkg/server"
)

func renderCmd(opts *globalOptions) *cobra.Command {
	var (
		root   string
		pretty bool
		page   bool
		live   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the server-rendered HTML of a widget",
		Long: `Mount a root widget headlessly and print its first render.

By default only the root element is printed. --page prints a full
document, and --live adds the client script that connects it.

Examples:
  tour render --root counter
  tour render --root iteration --pretty
  tour render --page --live > index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("root") {
				root = cfg.Server.Root
			}

			r, err := lookupRoot(root)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !page {
				if err := server.RenderRootFragment(w, r.Name, r.New, pretty); err != nil {
					return err
				}
				_, err := w.Write([]byte("\n"))
				return err
			}

			popts := server.PageOptions{Title: r.Title, Pretty: pretty && !live}
			if live {
				popts.LiveURL = render.DefaultLivePath + "?root=" + r.Name
			}
			return server.RenderRootPage(w, r.Name, r.New, popts)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Root widget to render (default from config)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the output")
	cmd.Flags().BoolVar(&page, "page", false, "Print a full HTML document")
	cmd.Flags().BoolVar(&live, "live", false, "Include the live client script (implies --page)")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if live {
			page = true
		}
	}

	return cmd
}
