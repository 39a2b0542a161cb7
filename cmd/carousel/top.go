// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bureau-foundation/carousel/lib/cli"
	"github.com/bureau-foundation/carousel/lib/query"
)

// characterEntry is the JSON form of a CharacterCount. The character
// is written as a string rather than a code point.
type characterEntry struct {
	Character string `json:"character"`
	Count     int    `json:"count"`
}

func characterEntries(counts []query.CharacterCount) []characterEntry {
	entries := make([]characterEntry, 0, len(counts))
	for _, count := range counts {
		entries = append(entries, characterEntry{Character: string(count.Character), Count: count.Count})
	}
	return entries
}

func topCommand(options *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "top [QUERY]",
		Short: "Show the most frequent letters and digits among the matching items",
		Long: `Count the letters and digits in the titles and subtitles of the items
matching QUERY (every item without one) and show the three most
frequent. Counting is case-sensitive; ties keep the order in which the
characters first appear.`,
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
			counts, err := session.topCharacters(ctx, state.Items)
			if err != nil {
				return err
			}

			if options.jsonOutput {
				return cli.WriteJSON(command.OutOrStdout(), characterEntries(counts))
			}
			return writeCounts(command.OutOrStdout(), counts)
		},
	}
}

func writeCounts(output io.Writer, counts []query.CharacterCount) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(output, "No letters or digits.")
		return err
	}
	writer := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "CHARACTER\tCOUNT")
	for _, count := range counts {
		fmt.Fprintf(writer, "%c\t%d\n", count.Character, count.Count)
	}
	return writer.Flush()
}
