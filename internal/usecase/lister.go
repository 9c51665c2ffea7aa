package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/ghloc/internal/domain"
	"github.com/naka-gawa/ghloc/internal/gateway"
)

// RepoLister enumerates the repositories owned by a user.
type RepoLister struct {
	fetcher gateway.Fetcher
	logger  logrus.FieldLogger
}

// NewRepoLister creates a new RepoLister instance.
func NewRepoLister(fetcher gateway.Fetcher, logger logrus.FieldLogger) *RepoLister {
	return &RepoLister{
		fetcher: fetcher,
		logger:  logger,
	}
}

// ListOwnedRepos pages through every repository visible to the token until an empty page
// and keeps those owned by ownerLogin, in page order.
//
// A rejected first page is an AuthError. A rejected later page ends the listing early and the
// repositories collected so far are returned. Transport failures always fail the listing.
func (l *RepoLister) ListOwnedRepos(ctx context.Context, ownerLogin string) ([]domain.RepositoryRef, error) {
	owned := make([]domain.RepositoryRef, 0)
	for page := 1; ; page++ {
		refs, err := l.fetcher.ListReposPage(ctx, page)
		if err != nil {
			var statusErr *domain.StatusError
			if !errors.As(err, &statusErr) {
				return nil, err
			}
			if page == 1 {
				return nil, &domain.AuthError{StatusCode: statusErr.StatusCode, Err: err}
			}
			l.logger.Warnf("Failed to fetch repositories: %d", statusErr.StatusCode)
			return owned, nil
		}
		if len(refs) == 0 {
			return owned, nil
		}
		for _, ref := range refs {
			if ref.OwnerLogin == ownerLogin {
				owned = append(owned, ref)
			}
		}
		l.logger.Debugf("  Fetched page %d (%d repositories, %d owned so far)", page, len(refs), len(owned))
	}
}
