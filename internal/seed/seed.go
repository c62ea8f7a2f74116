// Package seed reads the initial knowledge base from JSON or YAML.
//
// Timestamps are either absolute (RFC 3339) or relative to load time, so a
// demo data set always looks fresh:
//
//	questions:
//	  - id: q-1
//	    title: How do I pass state between fragments?
//	    asked_ago: 26h
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/errors"
	"github.com/listenupapp/stackqa/internal/repository"
)

// MaxFileSize bounds how much of a seed file is read.
const MaxFileSize = 8 << 20

//go:embed default.yaml
var defaultYAML []byte

// Format is a seed encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Validationf("unsupported seed file extension %q", filepath.Ext(path))
	}
}

// File is the on-disk layout of a seed.
type File struct {
	Tags      []TagRecord      `json:"tags" yaml:"tags"`
	Answers   []AnswerRecord   `json:"answers" yaml:"answers"`
	Questions []QuestionRecord `json:"questions" yaml:"questions"`
}

// TagRecord is a seeded tag.
type TagRecord struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// AnswerRecord is a seeded answer.
type AnswerRecord struct {
	ID         string `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	AnsweredBy string `json:"answered_by" yaml:"answered_by"`
	PostedAt   string `json:"posted_at,omitempty" yaml:"posted_at,omitempty"`
	PostedAgo  string `json:"posted_ago,omitempty" yaml:"posted_ago,omitempty"`
}

// QuestionRecord is a seeded question.
type QuestionRecord struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Text      string   `json:"text" yaml:"text"`
	TagIDs    []string `json:"tag_ids" yaml:"tag_ids"`
	AskedBy   string   `json:"asked_by" yaml:"asked_by"`
	AskedAt   string   `json:"asked_at,omitempty" yaml:"asked_at,omitempty"`
	AskedAgo  string   `json:"asked_ago,omitempty" yaml:"asked_ago,omitempty"`
	AnswerIDs []string `json:"answer_ids" yaml:"answer_ids"`
	Views     int      `json:"views" yaml:"views"`
}

// Default returns the built-in demo data set, with relative times
// resolved against now.
func Default(now time.Time) (repository.Seed, error) {
	return Decode(bytes.NewReader(defaultYAML), FormatYAML, now)
}

// Load reads a seed file. An empty path loads the built-in data set.
func Load(path string, now time.Time) (repository.Seed, error) {
	if path == "" {
		return Default(now)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return repository.Seed{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return repository.Seed{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	seed, err := Decode(f, format, now)
	if err != nil {
		return repository.Seed{}, fmt.Errorf("load seed %s: %w", path, err)
	}
	return seed, nil
}

// Decode parses a seed in the given format.
func Decode(r io.Reader, format Format, now time.Time) (repository.Seed, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return repository.Seed{}, fmt.Errorf("read seed: %w", err)
	}
	if len(data) > MaxFileSize {
		return repository.Seed{}, errors.Validationf("seed exceeds %d bytes", MaxFileSize)
	}

	var file File
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	default:
		return repository.Seed{}, errors.Validationf("unsupported seed format %q", format)
	}
	if err != nil {
		return repository.Seed{}, errors.Wrapf(err, errors.CodeValidation, "decode %s seed", format)
	}

	return file.Resolve(now)
}

// Resolve converts the records into a repository seed.
func (f File) Resolve(now time.Time) (repository.Seed, error) {
	seed := repository.Seed{
		Tags:      make([]domain.Tag, 0, len(f.Tags)),
		Answers:   make([]domain.Answer, 0, len(f.Answers)),
		Questions: make([]domain.Question, 0, len(f.Questions)),
	}

	for _, t := range f.Tags {
		seed.Tags = append(seed.Tags, domain.Tag{ID: t.ID, Name: t.Name})
	}

	for _, a := range f.Answers {
		postedAt, err := resolveTime(a.PostedAt, a.PostedAgo, now)
		if err != nil {
			return repository.Seed{}, errors.Wrapf(err, errors.CodeValidation, "answer %s", a.ID)
		}
		seed.Answers = append(seed.Answers, domain.Answer{
			ID:         a.ID,
			Text:       a.Text,
			AnsweredBy: a.AnsweredBy,
			PostedAt:   postedAt,
		})
	}

	for _, q := range f.Questions {
		askedAt, err := resolveTime(q.AskedAt, q.AskedAgo, now)
		if err != nil {
			return repository.Seed{}, errors.Wrapf(err, errors.CodeValidation, "question %s", q.ID)
		}
		seed.Questions = append(seed.Questions, domain.Question{
			ID:        q.ID,
			Title:     q.Title,
			Text:      q.Text,
			TagIDs:    q.TagIDs,
			AskedBy:   q.AskedBy,
			AskedAt:   askedAt,
			AnswerIDs: q.AnswerIDs,
			Views:     q.Views,
		})
	}

	return seed, nil
}

// resolveTime accepts exactly one of an RFC 3339 timestamp or a Go duration
// measured back from now.
func resolveTime(at, ago string, now time.Time) (time.Time, error) {
	switch {
	case at != "" && ago != "":
		return time.Time{}, errors.New("both an absolute and a relative time are set")
	case at != "":
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: %w", at, err)
		}
		return t, nil
	case ago != "":
		d, err := time.ParseDuration(ago)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse duration %q: %w", ago, err)
		}
		if d < 0 {
			return time.Time{}, fmt.Errorf("duration %q is negative", ago)
		}
		return now.Add(-d), nil
	default:
		return now, nil
	}
}
