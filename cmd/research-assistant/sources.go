// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/provider"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List providers and their availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tFREE\tSTATUS")
		active := 0
		for _, info := range provider.Catalog(cfg.Search) {
			status := "inactive"
			if info.Active {
				status = "active"
				active++
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", info.Name, info.Type, info.Free, status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d providers active\n", active)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
