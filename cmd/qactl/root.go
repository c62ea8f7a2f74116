package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/listenupapp/stackqa/internal/logger"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/search"
	"github.com/listenupapp/stackqa/internal/seed"
	"github.com/listenupapp/stackqa/internal/service"
	"github.com/listenupapp/stackqa/internal/validation"
)

// app holds what every subcommand needs once the seed file is loaded.
type app struct {
	seedPath string
	logLevel string
	now      func() time.Time

	index     *search.Index
	questions *service.QuestionService
	queries   *service.QueryService
	tags      *service.TagService
	search    *service.SearchService
}

func newRootCmd(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	root := &cobra.Command{
		Use:   "qactl",
		Short: "Browse a StackQA knowledge base from the terminal",
		Long: `qactl loads a seed file into memory and queries it the way the web
pages do: one page of questions at a time, threads with their answers,
tags with their question counts, and ranked search.

Examples:
  qactl questions                          # Newest questions, first page
  qactl questions --order active --start 5 # Second page by latest answer
  qactl questions --search "[react] hooks" # Filter by tag or text
  qactl show q-3                           # One question with its answers
  qactl tags                               # Tags with question counts
  qactl search gradle sync                 # Relevance-ranked search
  qactl --seed data.yaml questions         # Use your own seed file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.index != nil {
				_ = a.index.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.seedPath, "seed", "", "Path to a .json or .yaml seed file (default: built-in demo data)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newQuestionsCmd(a),
		newShowCmd(a),
		newTagsCmd(a),
		newSearchCmd(a),
	)

	return root
}

// load reads the seed file and wires the services over it.
func (a *app) load(cmd *cobra.Command) error {
	log := logger.New(logger.Config{
		Writer: cmd.ErrOrStderr(),
		Level:  logger.ParseLevel(a.logLevel),
	})

	data, err := seed.Load(a.seedPath, a.now())
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	index, err := search.NewIndex(search.Options{Logger: log.WithComponent("search")})
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}

	repo, err := repository.New(data, repository.Options{
		Clock:   a.now,
		Indexer: index,
		Logger:  log.WithComponent("repository"),
	})
	if err != nil {
		_ = index.Close()
		return fmt.Errorf("build repository: %w", err)
	}

	a.index = index
	a.questions = service.NewQuestionService(repo, validation.New(), nil, log.Logger)
	a.queries = service.NewQueryService(repo, nil, log.Logger)
	a.tags = service.NewTagService(repo, log.Logger)
	a.search = service.NewSearchService(index, repo, nil, log.Logger)

	if err := a.search.Reindex(cmd.Context()); err != nil {
		_ = index.Close()
		return fmt.Errorf("build search index: %w", err)
	}

	return nil
}
