// Package sorting orders question lists for the home page views.
package sorting

import (
	"slices"
	"strings"

	"github.com/listenupapp/stackqa/internal/domain"
)

// Order selects how a question list is arranged.
type Order int

// Supported orders. The zero value is Newest.
const (
	Newest Order = iota
	Active
	Unanswered
)

// String returns the lower-case name used in query strings.
func (o Order) String() string {
	switch o {
	case Active:
		return "active"
	case Unanswered:
		return "unanswered"
	default:
		return "newest"
	}
}

// ParseOrder maps an order name to an Order, ignoring case.
// Unknown names fall back to Newest.
func ParseOrder(name string) Order {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "active":
		return Active
	case "unanswered":
		return Unanswered
	default:
		return Newest
	}
}

// Sort returns a new slice arranged by the given order. The input is not modified.
//
// Unanswered also filters: only questions without answers are kept.
func Sort(order Order, questions []domain.Question) []domain.Question {
	switch order {
	case Active:
		out := slices.Clone(questions)
		slices.SortStableFunc(out, byActivity)
		return out
	case Unanswered:
		out := make([]domain.Question, 0, len(questions))
		for _, q := range questions {
			if q.AnswerCount() == 0 {
				out = append(out, q)
			}
		}
		slices.SortStableFunc(out, byAskedAt)
		return out
	default:
		out := slices.Clone(questions)
		slices.SortStableFunc(out, byAskedAt)
		return out
	}
}

// byAskedAt orders newest-asked first.
func byAskedAt(a, b domain.Question) int {
	return b.AskedAt.Compare(a.AskedAt)
}

// byActivity orders by most recent answer, then newest-asked.
// Unanswered questions rank as if answered at the Unix epoch.
func byActivity(a, b domain.Question) int {
	if c := b.LastActivity().Compare(a.LastActivity()); c != 0 {
		return c
	}
	return byAskedAt(a, b)
}
