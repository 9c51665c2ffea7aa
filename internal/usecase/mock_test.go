package usecase

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/ghloc/internal/domain"
	"github.com/naka-gawa/ghloc/internal/gateway"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

var _ gateway.Fetcher = (*mockFetcher)(nil)

func (m *mockFetcher) ListReposPage(ctx context.Context, page int) ([]domain.RepositoryRef, error) {
	args := m.Called(ctx, page)
	// We need to handle the case where the returned slice is nil (e.g., when an error occurs).
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepositoryRef), args.Error(1)
}

func (m *mockFetcher) ContributorStats(ctx context.Context, repo domain.RepositoryRef) ([]domain.ContributorRecord, gateway.StatsSignal, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Get(1).(gateway.StatsSignal), args.Error(2)
	}
	return args.Get(0).([]domain.ContributorRecord), args.Get(1).(gateway.StatsSignal), args.Error(2)
}

func (m *mockFetcher) Viewer(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func contributor(login string, weeks ...domain.WeeklyDelta) domain.ContributorRecord {
	total := 0
	for _, w := range weeks {
		total += w.Commits
	}
	return domain.ContributorRecord{TotalCommits: total, Weeks: weeks, AuthorLogin: login}
}
