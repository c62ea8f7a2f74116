package repository

import (
	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/query"
	"github.com/listenupapp/stackqa/internal/sorting"
)

// PageSize is the number of questions on one page of results.
const PageSize = 5

// Page is one slice of a question query.
type Page struct {
	Questions []domain.Question
	Start     int // Index of the first question in the full result
	Total     int // Number of questions matching the query
}

// GetQuestionsByFilter runs the home page query: filter by search string,
// arrange by the named order, then return PageSize questions from start.
//
// Order names are case-insensitive; unknown names mean newest. A start past
// the end yields an empty page with the full Total.
func (r *Repository) GetQuestionsByFilter(start int, order, search string) Page {
	return r.Query(start, sorting.ParseOrder(order), query.Parse(search))
}

// Query is GetQuestionsByFilter with pre-parsed arguments.
func (r *Repository) Query(start int, order sorting.Order, f query.Filter) Page {
	r.mu.RLock()
	matched := r.filterLocked(f)
	r.mu.RUnlock()

	sorted := sorting.Sort(order, matched)
	return paginate(sorted, start)
}

// filterLocked copies the questions matching f.
func (r *Repository) filterLocked(f query.Filter) []domain.Question {
	if f.MatchesAll() {
		return r.snapshotLocked()
	}

	out := make([]domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if f.Matches(q, r.tagNameLocked) {
			out = append(out, q.Clone())
		}
	}
	return out
}

func paginate(questions []domain.Question, start int) Page {
	start = max(start, 0)
	total := len(questions)

	page := Page{Start: start, Total: total, Questions: []domain.Question{}}
	if start >= total {
		return page
	}

	end := min(start+PageSize, total)
	page.Questions = questions[start:end]
	return page
}
