package main

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with how many questions carry them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags := a.tags.ListTags(cmd.Context())

			data := pterm.TableData{{"ID", "Name", "Questions"}}
			for _, t := range tags {
				data = append(data, []string{t.ID, t.Name, strconv.Itoa(t.QuestionCount)})
			}

			return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
		},
	}
}
