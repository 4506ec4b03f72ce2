package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tour/app/components"
)

func rootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "List the root widgets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, r := range components.Roots {
				name := nameStyle.Width(12).Render(r.Name)
				marker := ""
				if r.Name == components.DefaultRoot {
					marker = mutedStyle.Render(" (default)")
				}
				fmt.Fprintf(w, "%s %s%s\n", name, r.Title, marker)
				fmt.Fprintf(w, "%s %s\n", nameStyle.Width(12).Render(""), mutedStyle.Render(r.Description))
			}
		},
	}
}
