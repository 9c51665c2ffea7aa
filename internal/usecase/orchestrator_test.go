package usecase

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/ghloc/internal/domain"
)

// fetchFunc adapts a function to the RepoFetcher interface.
type fetchFunc func(ctx context.Context, repo domain.RepositoryRef) domain.RepoResult

func (f fetchFunc) Fetch(ctx context.Context, repo domain.RepositoryRef) domain.RepoResult {
	return f(ctx, repo)
}

func refs(names ...string) []domain.RepositoryRef {
	out := make([]domain.RepositoryRef, 0, len(names))
	for _, n := range names {
		out = append(out, domain.RepositoryRef{Name: n, OwnerLogin: "alice"})
	}
	return out
}

func TestOrchestrator_Run_KeepsRequestOrderRegardlessOfCompletion(t *testing.T) {
	repos := refs("a", "b", "c", "d", "e", "f")
	fetcher := fetchFunc(func(_ context.Context, repo domain.RepositoryRef) domain.RepoResult {
		time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
		return domain.RepoResult{RepoName: repo.Name, Outcome: domain.OutcomeEmpty}
	})
	o := NewOrchestrator(fetcher, 0, discardLogger())

	results := o.Run(context.Background(), repos)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.RepoName)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, names)
}

func TestOrchestrator_Run_PanickingFetchIsReportedUnresolved(t *testing.T) {
	repos := refs("a", "boom", "c")
	fetcher := fetchFunc(func(_ context.Context, repo domain.RepositoryRef) domain.RepoResult {
		if repo.Name == "boom" {
			panic("nil map write")
		}
		return domain.RepoResult{RepoName: repo.Name, Outcome: domain.OutcomeEmpty}
	})
	o := NewOrchestrator(fetcher, 0, discardLogger())

	results := o.Run(context.Background(), repos)

	assert.Len(t, results, 2)
	investigated, unresolved := Reconcile(repos, results)
	assert.Equal(t, []string{"a", "c"}, investigated)
	assert.Equal(t, []string{"boom"}, unresolved)
}

func TestOrchestrator_Run_NoReposReturnsEmpty(t *testing.T) {
	o := NewOrchestrator(fetchFunc(func(context.Context, domain.RepositoryRef) domain.RepoResult {
		t.Fatal("fetch must not be called")
		return domain.RepoResult{}
	}), 0, discardLogger())

	assert.Empty(t, o.Run(context.Background(), nil))
}

func TestOrchestrator_Run_RespectsMaxWorkers(t *testing.T) {
	var inFlight, peak int32
	fetcher := fetchFunc(func(_ context.Context, repo domain.RepositoryRef) domain.RepoResult {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return domain.RepoResult{RepoName: repo.Name}
	})
	o := NewOrchestrator(fetcher, 2, discardLogger())

	results := o.Run(context.Background(), refs("a", "b", "c", "d", "e", "f", "g", "h"))

	assert.Len(t, results, 8)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestReconcile_Invariant(t *testing.T) {
	testCases := []struct {
		name               string
		requested          []domain.RepositoryRef
		results            []domain.RepoResult
		expectedInvestig   []string
		expectedUnresolved []string
	}{
		{
			name:               "nothing requested",
			requested:          nil,
			results:            nil,
			expectedInvestig:   []string{},
			expectedUnresolved: []string{},
		},
		{
			name:      "every repo resolved with mixed outcomes",
			requested: refs("a", "b", "c"),
			results: []domain.RepoResult{
				{RepoName: "c", Outcome: domain.OutcomeGivenUp},
				{RepoName: "a", Outcome: domain.OutcomeReady},
				{RepoName: "b", Outcome: domain.OutcomeForbidden},
			},
			expectedInvestig:   []string{"a", "b", "c"},
			expectedUnresolved: []string{},
		},
		{
			name:               "no result at all",
			requested:          refs("x", "y"),
			results:            nil,
			expectedInvestig:   []string{},
			expectedUnresolved: []string{"x", "y"},
		},
		{
			name:               "partial",
			requested:          refs("x", "y", "z"),
			results:            []domain.RepoResult{{RepoName: "y"}},
			expectedInvestig:   []string{"y"},
			expectedUnresolved: []string{"x", "z"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			investigated, unresolved := Reconcile(tc.requested, tc.results)
			assert.Equal(t, tc.expectedInvestig, investigated)
			assert.Equal(t, tc.expectedUnresolved, unresolved)
			assert.Equal(t, len(tc.requested), len(investigated)+len(unresolved))
		})
	}
}
