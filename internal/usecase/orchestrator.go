package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/ghloc/internal/domain"
)

// RepoFetcher resolves one repository to a terminal result.
type RepoFetcher interface {
	Fetch(ctx context.Context, repo domain.RepositoryRef) domain.RepoResult
}

// Orchestrator fans out one fetch per repository and waits for all of them.
type Orchestrator struct {
	fetcher    RepoFetcher
	maxWorkers int
	logger     logrus.FieldLogger
}

// NewOrchestrator creates a new Orchestrator instance.
// maxWorkers <= 0 spawns every fetch at once.
func NewOrchestrator(fetcher RepoFetcher, maxWorkers int, logger logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		fetcher:    fetcher,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// Run fetches every repository concurrently and returns the results in the order of repos.
// A fetch that panics is logged and left out of the results.
func (o *Orchestrator) Run(ctx context.Context, repos []domain.RepositoryRef) []domain.RepoResult {
	// Each goroutine writes only its own slot.
	slots := make([]*domain.RepoResult, len(repos))

	var eg errgroup.Group
	if o.maxWorkers > 0 {
		eg.SetLimit(o.maxWorkers)
	}
	for i, repo := range repos {
		o.logger.Infof("Fetching data for %s", repo.Name)
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("fetch for %s panicked: %v", repo.Name, r)
					o.logger.WithField("repo", repo.Name).Errorf("Unexpected error occurred: %v", r)
				}
			}()
			result := o.fetcher.Fetch(ctx, repo)
			slots[i] = &result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		o.logger.Debugf("At least one fetch did not complete: %v", err)
	}

	results := make([]domain.RepoResult, 0, len(repos))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results
}

// Reconcile compares the requested repositories with the results and returns the names of
// the repositories that produced a result and of those that did not, both sorted.
func Reconcile(requested []domain.RepositoryRef, results []domain.RepoResult) (investigated, unresolved []string) {
	requestedNames := lo.Map(requested, func(r domain.RepositoryRef, _ int) string { return r.Name })
	resultNames := lo.Map(results, func(r domain.RepoResult, _ int) string { return r.RepoName })

	investigated = lo.Uniq(lo.Intersect(requestedNames, resultNames))
	unresolved, _ = lo.Difference(lo.Uniq(requestedNames), resultNames)
	sort.Strings(investigated)
	sort.Strings(unresolved)
	return investigated, unresolved
}
