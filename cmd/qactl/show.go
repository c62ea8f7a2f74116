package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/listenupapp/stackqa/internal/timefmt"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <question-id>",
		Short: "Show a question with its answers, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, args[0])
		},
	}
}

func (a *app) runShow(cmd *cobra.Command, questionID string) error {
	out := cmd.OutOrStdout()

	thread, err := a.questions.GetQuestion(cmd.Context(), questionID)
	if err != nil {
		return err
	}

	now := a.now()
	q := thread.Question

	names := make([]string, len(thread.Tags))
	for i, t := range thread.Tags {
		names[i] = "[" + t.Name + "]"
	}

	pterm.Fprintln(out, pterm.Bold.Sprint(q.Title))
	pterm.Fprintln(out, pterm.Gray("asked by "+q.AskedBy+" "+timefmt.Relative(q.AskedAt, now)+
		", "+strconv.Itoa(q.Views)+" views, active "+timefmt.Relative(thread.LastActivity(), now)))
	pterm.Fprintln(out, strings.Join(names, " "))
	pterm.Fprintln(out)
	pterm.Fprintln(out, q.Text)
	pterm.Fprintln(out)
	pterm.Fprintln(out, pterm.Bold.Sprint(strconv.Itoa(len(thread.Answers))+" answers"))

	for _, ans := range thread.Answers {
		pterm.Fprintln(out)
		pterm.Fprintln(out, ans.Text)
		pterm.Fprintln(out, pterm.Gray("answered by "+ans.AnsweredBy+" "+timefmt.Relative(ans.PostedAt, now)))
	}

	return nil
}
