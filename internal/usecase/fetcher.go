package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/ghloc/internal/domain"
	"github.com/naka-gawa/ghloc/internal/gateway"
)

// Retry defaults used when no configuration overrides them.
const (
	DefaultRetryDelay = 2 * time.Second
	DefaultMaxRetries = 5
)

// RetryConfig bounds the retries of a single repository.
// The delay before retry n (1-based) is BaseDelay*n.
type RetryConfig struct {
	BaseDelay  time.Duration
	MaxRetries int
}

// DefaultRetryConfig returns the retry configuration used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{BaseDelay: DefaultRetryDelay, MaxRetries: DefaultMaxRetries}
}

// Sleeper suspends the calling goroutine for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration)

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// ContributorFetcher drives the contributor statistics endpoint of one repository to a
// terminal result. GitHub computes these statistics asynchronously, so "not ready"
// answers are retried with a linearly growing delay.
type ContributorFetcher struct {
	fetcher gateway.Fetcher
	retry   RetryConfig
	sleep   Sleeper
	logger  logrus.FieldLogger
}

// NewContributorFetcher creates a new ContributorFetcher instance.
func NewContributorFetcher(fetcher gateway.Fetcher, retry RetryConfig, logger logrus.FieldLogger) *ContributorFetcher {
	return &ContributorFetcher{
		fetcher: fetcher,
		retry:   retry,
		sleep:   sleepContext,
		logger:  logger,
	}
}

// fetchState is owned by a single Fetch call.
type fetchState struct {
	repo     domain.RepositoryRef
	attempts int
}

func (s *fetchState) done(outcome domain.Outcome, contributors []domain.ContributorRecord) domain.RepoResult {
	return domain.RepoResult{
		RepoName:     s.repo.Name,
		Contributors: contributors,
		Outcome:      outcome,
		Attempts:     s.attempts,
	}
}

// Fetch always returns a result; per-repository failures resolve to an empty result.
func (f *ContributorFetcher) Fetch(ctx context.Context, repo domain.RepositoryRef) domain.RepoResult {
	state := &fetchState{repo: repo}
	log := f.logger.WithField("repo", repo.Name)

	for {
		records, signal, err := f.fetcher.ContributorStats(ctx, repo)
		delay := f.retry.BaseDelay * time.Duration(state.attempts+1)

		switch signal {
		case gateway.SignalReady:
			log.Debugf("Fetched %d contributors for %s", len(records), repo.Name)
			return state.done(domain.OutcomeReady, records)
		case gateway.SignalMalformed:
			log.Warnf("Failed to parse contributors for %s, err: %v", repo.Name, err)
			return state.done(domain.OutcomeMalformed, nil)
		case gateway.SignalNoContent:
			log.Infof("No content available for %s", repo.Name)
			return state.done(domain.OutcomeEmpty, nil)
		case gateway.SignalForbidden:
			log.Warnf("Access forbidden for %s. Check your token permissions or rate limits.", repo.Name)
			return state.done(domain.OutcomeForbidden, nil)
		case gateway.SignalComputing:
			log.Infof("Statistics for %s are being prepared, retrying after %s...", repo.Name, delay)
		default:
			log.Warnf("Failed to fetch contributors for %s: %v. Retrying after %s...", repo.Name, err, delay)
		}

		state.attempts++
		if state.attempts >= f.retry.MaxRetries {
			log.Warnf("Failed to fetch contributors for %s after %d retries.", repo.Name, f.retry.MaxRetries)
			return state.done(domain.OutcomeGivenUp, nil)
		}
		f.sleep(ctx, delay)
	}
}
