package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/listenupapp/stackqa/internal/service"
	"github.com/listenupapp/stackqa/internal/timefmt"
)

func newQuestionsCmd(a *app) *cobra.Command {
	var in service.ListQuestionsInput

	cmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"ls"},
		Short:   "List one page of questions",
		Long: `List one page of five questions.

--order is newest (default), active or unanswered. --search takes free text
and [tag] terms; a question matches on its text or on carrying every tag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runQuestions(cmd, in)
		},
	}

	cmd.Flags().StringVar(&in.Start, "start", "0", "Index of the first question")
	cmd.Flags().StringVar(&in.Order, "order", "newest", "newest, active or unanswered")
	cmd.Flags().StringVar(&in.Search, "search", "", "Free text and [tag] terms")

	return cmd
}

func (a *app) runQuestions(cmd *cobra.Command, in service.ListQuestionsInput) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	page := a.queries.ListQuestions(ctx, in)

	if len(page.Questions) == 0 {
		pterm.Fprintln(out, "No questions found.")
		return nil
	}

	now := a.now()
	data := pterm.TableData{{"ID", "Title", "Tags", "Answers", "Views", "Asked"}}
	for _, q := range page.Questions {
		names := make([]string, 0, len(q.TagIDs))
		for _, t := range a.tags.ResolveTags(ctx, q.TagIDs) {
			names = append(names, t.Name)
		}
		data = append(data, []string{
			q.ID,
			q.Title,
			strings.Join(names, " "),
			strconv.Itoa(q.AnswerCount()),
			strconv.Itoa(q.Views),
			timefmt.Relative(q.AskedAt, now),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render(); err != nil {
		return err
	}

	p := page.Pagination
	pterm.Fprintln(out, pterm.Gray("Showing "+strconv.Itoa(p.Start+1)+"-"+strconv.Itoa(p.Start+len(page.Questions))+
		" of "+strconv.Itoa(p.Total)+" (order: "+page.Order.String()+")"))
	if !p.IsLast {
		pterm.Fprintln(out, pterm.Gray("Next page: --start "+strconv.Itoa(p.Next)))
	}

	return nil
}
