// Package repository owns every question, answer and tag of the knowledge base
// and answers the filtered, sorted and paginated queries the pages are built from.
//
// All records live in process memory. Reads hand out copies, so callers can
// never break the references between questions, answers and tags.
package repository

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/id"
)

// Id prefixes per collection.
const (
	QuestionPrefix = "q"
	AnswerPrefix   = "ans"
	TagPrefix      = "tag"
)

// Indexer is notified whenever a question or one of its answers changes, so
// a secondary index can follow the repository. Seeded questions are not
// pushed by New; build the index from Questions once the repository exists.
type Indexer interface {
	IndexQuestion(q domain.Question, tags []domain.Tag, answers []domain.Answer) error
}

// NoopIndexer discards index updates.
type NoopIndexer struct{}

// IndexQuestion implements Indexer as a no-op.
func (NoopIndexer) IndexQuestion(domain.Question, []domain.Tag, []domain.Answer) error { return nil }

// Options configures a Repository. The zero value is usable.
type Options struct {
	// Clock stamps AskedAt and PostedAt (default time.Now).
	Clock func() time.Time
	// IDScheme selects how new ids are minted (default sequential).
	IDScheme id.Scheme
	// Indexer follows question changes (default NoopIndexer).
	Indexer Indexer
	// Logger receives debug and warning output (default discard).
	Logger *slog.Logger
}

// Repository is the in-memory store and query engine. Safe for concurrent use.
type Repository struct {
	mu sync.RWMutex

	questions    []*domain.Question // insertion order
	questionByID map[string]*domain.Question

	answers    []domain.Answer
	answerByID map[string]int // index into answers

	tags      []domain.Tag
	tagByID   map[string]int    // index into tags
	tagByName map[string]string // exact name -> id

	questionIDs id.Source
	answerIDs   id.Source
	tagIDs      id.Source

	clock   func() time.Time
	indexer Indexer
	logger  *slog.Logger
}

// New builds a repository from a seed payload.
// The seed is validated; see Seed for the rules.
func New(seed Seed, opts Options) (*Repository, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Indexer == nil {
		opts.Indexer = NoopIndexer{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.IDScheme == "" {
		opts.IDScheme = id.SchemeSequential
	}

	r := &Repository{
		questionByID: make(map[string]*domain.Question, len(seed.Questions)),
		answerByID:   make(map[string]int, len(seed.Answers)),
		tagByID:      make(map[string]int, len(seed.Tags)),
		tagByName:    make(map[string]string, len(seed.Tags)),
		questionIDs:  id.NewSource(opts.IDScheme, QuestionPrefix, len(seed.Questions)),
		answerIDs:    id.NewSource(opts.IDScheme, AnswerPrefix, len(seed.Answers)),
		tagIDs:       id.NewSource(opts.IDScheme, TagPrefix, len(seed.Tags)),
		clock:        opts.Clock,
		indexer:      opts.Indexer,
		logger:       opts.Logger,
	}

	if err := r.load(seed); err != nil {
		return nil, err
	}

	r.logger.Debug("repository loaded",
		"questions", len(r.questions),
		"answers", len(r.answers),
		"tags", len(r.tags),
		"id_scheme", string(opts.IDScheme),
	)

	return r, nil
}

// AddQuestion stores a new question and returns its id.
//
// Each tag name is resolved to an existing tag by exact, case-sensitive
// name, or a new tag is created. Repeated names collapse to one reference.
func (r *Repository) AddQuestion(title, text string, tagNames []string, askedBy string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	tagIDs := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		tid := r.addTagLocked(name)
		if !slices.Contains(tagIDs, tid) {
			tagIDs = append(tagIDs, tid)
		}
	}

	q := &domain.Question{
		ID:        r.nextID(r.questionIDs, r.questionExists),
		Title:     title,
		Text:      text,
		TagIDs:    tagIDs,
		AskedBy:   askedBy,
		AskedAt:   r.clock(),
		AnswerIDs: []string{},
	}
	r.questions = append(r.questions, q)
	r.questionByID[q.ID] = q
	r.reindexLocked(q)

	r.logger.Debug("question added", "question_id", q.ID, "tags", len(tagIDs))
	return q.ID
}

// AddAnswer attaches a new answer to an existing question and returns its id.
// When questionID is unknown nothing is stored and the empty string is returned.
func (r *Repository) AddAnswer(questionID, text, answeredBy string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questionByID[questionID]
	if !ok {
		r.logger.Debug("answer dropped for unknown question", "question_id", questionID)
		return ""
	}

	a := domain.Answer{
		ID:         r.nextID(r.answerIDs, r.answerExists),
		Text:       text,
		AnsweredBy: answeredBy,
		PostedAt:   r.clock(),
	}
	r.answerByID[a.ID] = len(r.answers)
	r.answers = append(r.answers, a)
	q.AddAnswer(a.ID, a.PostedAt)
	r.reindexLocked(q)

	r.logger.Debug("answer added", "question_id", q.ID, "answer_id", a.ID)
	return a.ID
}

// AddTag resolves a tag by exact name, creating it when unseen, and returns its id.
func (r *Repository) AddTag(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addTagLocked(name)
}

// RecordView increments a question's view count and returns the updated question.
func (r *Repository) RecordView(questionID string) (domain.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questionByID[questionID]
	if !ok {
		return domain.Question{}, false
	}
	q.AddView()
	r.reindexLocked(q)
	return q.Clone(), true
}

// GetQuestionByID returns a copy of the question with the given id.
func (r *Repository) GetQuestionByID(questionID string) (domain.Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questionByID[questionID]
	if !ok {
		return domain.Question{}, false
	}
	return q.Clone(), true
}

// GetAnswerByID returns the answer with the given id.
func (r *Repository) GetAnswerByID(answerID string) (domain.Answer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.answerByID[answerID]
	if !ok {
		return domain.Answer{}, false
	}
	return r.answers[i], true
}

// GetQuestionAnswers resolves q's answers, most recently posted first.
// Ids that do not resolve are skipped.
func (r *Repository) GetQuestionAnswers(q domain.Question) []domain.Answer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.answersForLocked(q.AnswerIDs)
}

// Questions returns a copy of every question in insertion order.
func (r *Repository) Questions() []domain.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Answers returns a copy of every answer in insertion order.
func (r *Repository) Answers() []domain.Answer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.answers)
}

// GetTags returns a copy of every tag in insertion order.
func (r *Repository) GetTags() []domain.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tags)
}

// GetTagByID returns the tag with the given id.
func (r *Repository) GetTagByID(tagID string) (domain.Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tagLocked(tagID)
}

// QuestionCount returns the number of questions.
func (r *Repository) QuestionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions)
}

// AnswerCount returns the number of answers.
func (r *Repository) AnswerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.answers)
}

// TagCount returns the number of tags.
func (r *Repository) TagCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tags)
}

// GetQuestionCountByTag counts the questions that reference tagID.
func (r *Repository) GetQuestionCountByTag(tagID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, q := range r.questions {
		if q.HasTag(tagID) {
			n++
		}
	}
	return n
}

// addTagLocked must be called with the write lock held.
func (r *Repository) addTagLocked(name string) string {
	if tid, ok := r.tagByName[name]; ok {
		return tid
	}

	t := domain.Tag{ID: r.nextID(r.tagIDs, r.tagExists), Name: name}
	r.tagByID[t.ID] = len(r.tags)
	r.tags = append(r.tags, t)
	r.tagByName[name] = t.ID

	r.logger.Debug("tag created", "tag_id", t.ID, "name", name)
	return t.ID
}

func (r *Repository) tagLocked(tagID string) (domain.Tag, bool) {
	i, ok := r.tagByID[tagID]
	if !ok {
		return domain.Tag{}, false
	}
	return r.tags[i], true
}

func (r *Repository) tagNameLocked(tagID string) (string, bool) {
	t, ok := r.tagLocked(tagID)
	return t.Name, ok
}

func (r *Repository) answersForLocked(answerIDs []string) []domain.Answer {
	out := make([]domain.Answer, 0, len(answerIDs))
	for _, aid := range answerIDs {
		if i, ok := r.answerByID[aid]; ok {
			out = append(out, r.answers[i])
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Answer) int {
		return b.PostedAt.Compare(a.PostedAt)
	})
	return out
}

func (r *Repository) snapshotLocked() []domain.Question {
	out := make([]domain.Question, len(r.questions))
	for i, q := range r.questions {
		out[i] = q.Clone()
	}
	return out
}

// reindexLocked pushes q to the indexer. Index failures are logged only.
func (r *Repository) reindexLocked(q *domain.Question) {
	tags := make([]domain.Tag, 0, len(q.TagIDs))
	for _, tid := range q.TagIDs {
		if t, ok := r.tagLocked(tid); ok {
			tags = append(tags, t)
		}
	}

	if err := r.indexer.IndexQuestion(q.Clone(), tags, r.answersForLocked(q.AnswerIDs)); err != nil {
		r.logger.Warn("failed to index question", "question_id", q.ID, "error", err)
	}
}

// nextID draws ids from src until one is not taken. Seeded ids need not be
// contiguous, so a sequential source may land on one that already exists.
func (r *Repository) nextID(src id.Source, taken func(string) bool) string {
	for {
		if next := src.Next(); !taken(next) {
			return next
		}
	}
}

func (r *Repository) questionExists(qid string) bool {
	_, ok := r.questionByID[qid]
	return ok
}

func (r *Repository) answerExists(aid string) bool {
	_, ok := r.answerByID[aid]
	return ok
}

func (r *Repository) tagExists(tid string) bool {
	_, ok := r.tagByID[tid]
	return ok
}
