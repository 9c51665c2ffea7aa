// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/ghloc/internal/domain"
	"github.com/naka-gawa/ghloc/internal/gateway"
)

// Stats is the use case for computing line and commit totals over every owned repository.
// It orchestrates listing, fetching and aggregation.
type Stats struct {
	lister       *RepoLister
	orchestrator *Orchestrator
	logger       logrus.FieldLogger
}

// NewStats creates a new Stats instance.
func NewStats(fetcher gateway.Fetcher, retry RetryConfig, maxWorkers int, logger logrus.FieldLogger) *Stats {
	return &Stats{
		lister:       NewRepoLister(fetcher, logger),
		orchestrator: NewOrchestrator(NewContributorFetcher(fetcher, retry, logger), maxWorkers, logger),
		logger:       logger,
	}
}

// Run performs the main business logic. A listing failure aborts the run; once the
// repositories are known the run always ends with a summary, even if every fetch failed.
func (s *Stats) Run(ctx context.Context, creds domain.Credentials) (domain.RunSummary, error) {
	if !creds.Complete() {
		return domain.RunSummary{}, domain.ErrMissingCredentials
	}

	s.logger.Info("Because this data is expensive to compute, this tool can run for a while.")
	s.logger.Info("Expect retries, since GitHub needs time to calculate this data.")

	repos, err := s.lister.ListOwnedRepos(ctx, creds.Username)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("failed to list repositories: %w", err)
	}
	s.logger.Infof("Found %d repos...", len(repos))

	results := s.orchestrator.Run(ctx, repos)
	s.logger.Debugf("Usecase: %d of %d fetches returned a result.", len(results), len(repos))

	return Aggregate(repos, results), nil
}
