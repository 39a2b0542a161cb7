// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/cli"
)

// searchResult is the JSON form of a search.
type searchResult struct {
	Query    string         `json:"query"`
	Revision string         `json:"revision"`
	Items    []catalog.Item `json:"items"`
}

func searchCommand(options *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [QUERY]",
		Short: "List the items whose title or subtitle contains QUERY",
		Long: `List the items whose title or subtitle contains QUERY, ignoring case.
The query is matched verbatim, spaces included. With no QUERY, or a
query of only whitespace, every item is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			ctx, cancel := commandContext(command)
			defer cancel()

			session, err := options.openSession(ctx, command)
			if err != nil {
				return err
			}
			defer session.close()

			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			state, err := session.search(ctx, text)
			if err != nil {
				return err
			}
			session.logger.Debug("search complete", "query", text, "matches", len(state.Items))

			if options.jsonOutput {
				return cli.WriteJSON(command.OutOrStdout(), searchResult{
					Query:    state.Query,
					Revision: state.Revision.String(),
					Items:    state.Items,
				})
			}
			return writeItems(command.OutOrStdout(), state.Items)
		},
	}
}

func writeItems(output io.Writer, items []catalog.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(output, "No items match.")
		return err
	}
	writer := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "TITLE\tSUBTITLE\tIMAGE")
	for _, item := range items {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", item.Title, item.Subtitle, item.ImageRef)
	}
	return writer.Flush()
}
