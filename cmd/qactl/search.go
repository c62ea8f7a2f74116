package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/listenupapp/stackqa/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "search <terms...>",
		Short: "Relevance-ranked search over questions and answers",
		Long: `Search titles, bodies and answers. Bracketed terms such as [react]
are required tags.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			res, err := a.search.Search(cmd.Context(), strings.Join(args, " "), limit, offset)
			if err != nil {
				return err
			}

			if len(res.Hits) == 0 {
				pterm.Fprintln(out, "No matches.")
				return nil
			}

			data := pterm.TableData{{"ID", "Score", "Title", "Answers", "Views"}}
			for _, h := range res.Hits {
				data = append(data, []string{
					h.ID,
					strconv.FormatFloat(h.Score, 'f', 2, 64),
					h.Title,
					strconv.Itoa(h.AnswerCount),
					strconv.Itoa(h.Views),
				})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render(); err != nil {
				return err
			}
			pterm.Fprintln(out, pterm.Gray(strconv.FormatUint(res.Total, 10)+" matches in "+strconv.FormatInt(res.TookMs, 10)+"ms"))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", search.DefaultLimit, "Maximum number of hits")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of hits to skip")

	return cmd
}
