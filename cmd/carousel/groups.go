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

// groupSummary is the JSON form of one carousel group.
type groupSummary struct {
	ImageRef catalog.ImageRef `json:"image"`
	Items    int              `json:"items"`
	Titles   []string         `json:"titles"`
}

func groupsCommand(options *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the carousel groups and their item counts",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(command)
			defer cancel()

			session, err := options.openSession(ctx, command)
			if err != nil {
				return err
			}
			defer session.close()

			snapshot := session.store.Snapshot()
			summaries := summarizeGroups(snapshot.Groups)
			if options.jsonOutput {
				return cli.WriteJSON(command.OutOrStdout(), summaries)
			}
			return writeGroups(command.OutOrStdout(), summaries, snapshot.Revision)
		},
	}
}

func summarizeGroups(groups []catalog.ImageGroup) []groupSummary {
	summaries := make([]groupSummary, 0, len(groups))
	for _, group := range groups {
		titles := make([]string, 0, len(group.Items))
		for _, item := range group.Items {
			titles = append(titles, item.Title)
		}
		summaries = append(summaries, groupSummary{
			ImageRef: group.ImageRef,
			Items:    len(group.Items),
			Titles:   titles,
		})
	}
	return summaries
}

func writeGroups(output io.Writer, summaries []groupSummary, revision catalog.Revision) error {
	writer := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "GROUP\tIMAGE\tITEMS\tFIRST TITLE")
	for index, summary := range summaries {
		first := "-"
		if len(summary.Titles) > 0 {
			first = summary.Titles[0]
		}
		fmt.Fprintf(writer, "%d\t%s\t%d\t%s\n", index+1, summary.ImageRef, summary.Items, first)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(output, "\n%d groups, revision %s\n", len(summaries), revision)
	return err
}
