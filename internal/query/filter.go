// Package query parses home-page search strings and matches questions against them.
//
// A search string mixes free text with bracketed tag names:
//
//	"[react] [hooks] state update"
//
// yields tag terms "react" and "hooks" and the text term "state update".
package query

import (
	"regexp"
	"strings"

	"github.com/listenupapp/stackqa/internal/domain"
)

var tagTermPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Filter is a parsed search string. All terms are lower-cased.
type Filter struct {
	Text string
	Tags []string

	raw string
}

// TagNamer resolves a tag id to its name.
type TagNamer func(tagID string) (string, bool)

// Parse splits a search string into its text and tag terms.
func Parse(search string) Filter {
	f := Filter{raw: search}
	for _, m := range tagTermPattern.FindAllStringSubmatch(search, -1) {
		f.Tags = append(f.Tags, strings.ToLower(m[1]))
	}
	f.Text = strings.ToLower(strings.TrimSpace(tagTermPattern.ReplaceAllString(search, "")))
	return f
}

// MatchesAll reports whether the filter was built from an empty search
// string, which applies no filtering at all.
//
// A blank but non-empty string such as "   " is not the same: it has no
// terms, so Matches rejects every question.
func (f Filter) MatchesAll() bool {
	return f.raw == "" && f.Text == "" && len(f.Tags) == 0
}

// Matches reports whether q satisfies the filter.
//
// Text and tag terms are OR'd: q matches when the text term occurs in its
// title or body, or when every tag term names one of its tags.
func (f Filter) Matches(q *domain.Question, tagName TagNamer) bool {
	return f.matchesText(q) || f.matchesTags(q, tagName)
}

func (f Filter) matchesText(q *domain.Question) bool {
	if f.Text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(q.Title), f.Text) ||
		strings.Contains(strings.ToLower(q.Text), f.Text)
}

func (f Filter) matchesTags(q *domain.Question, tagName TagNamer) bool {
	if len(f.Tags) == 0 {
		return false
	}
	for _, term := range f.Tags {
		if !hasTagNamed(q, term, tagName) {
			return false
		}
	}
	return true
}

func hasTagNamed(q *domain.Question, term string, tagName TagNamer) bool {
	for _, id := range q.TagIDs {
		if name, ok := tagName(id); ok && strings.ToLower(name) == term {
			return true
		}
	}
	return false
}
