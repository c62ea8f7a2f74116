package service

import "github.com/listenupapp/stackqa/internal/repository"

// Pagination describes the navigation around one page of questions.
type Pagination struct {
	Start    int  `json:"start"`
	Total    int  `json:"total"`
	PageSize int  `json:"page_size"`
	Next     int  `json:"next"` // Wraps to 0 after the last page
	Prev     int  `json:"prev"`
	IsFirst  bool `json:"is_first"`
	IsLast   bool `json:"is_last"`
}

// NextStart returns the start of the following page, or 0 when start is on
// the last page.
func NextStart(start, total int) int {
	if start+repository.PageSize < total {
		return start + repository.PageSize
	}
	return 0
}

// PrevStart returns the start of the previous page, never below 0.
func PrevStart(start int) int {
	return max(start-repository.PageSize, 0)
}

// IsFirstPage reports whether start is the first page.
func IsFirstPage(start int) bool {
	return start <= 0
}

// IsLastPage reports whether no questions follow the page at start.
func IsLastPage(start, total int) bool {
	return start+repository.PageSize >= total
}

// Paginate builds the navigation for the page at start.
func Paginate(start, total int) Pagination {
	return Pagination{
		Start:    start,
		Total:    total,
		PageSize: repository.PageSize,
		Next:     NextStart(start, total),
		Prev:     PrevStart(start),
		IsFirst:  IsFirstPage(start),
		IsLast:   IsLastPage(start, total),
	}
}
