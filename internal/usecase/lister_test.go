package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/ghloc/internal/domain"
)

func TestRepoLister_ListOwnedRepos(t *testing.T) {
	page1 := []domain.RepositoryRef{
		{Name: "dotfiles", OwnerLogin: "alice"},
		{Name: "platform", OwnerLogin: "acme"},
		{Name: "blog", OwnerLogin: "alice"},
	}
	page2 := []domain.RepositoryRef{
		{Name: "infra", OwnerLogin: "acme"},
		{Name: "ghloc", OwnerLogin: "alice"},
	}

	testCases := []struct {
		name      string
		setup     func(f *mockFetcher)
		expected  []domain.RepositoryRef
		expectErr func(t *testing.T, err error)
	}{
		{
			name: "happy path - concatenates owned repos of every page until an empty page",
			setup: func(f *mockFetcher) {
				f.On("ListReposPage", mock.Anything, 1).Return(page1, nil).Once()
				f.On("ListReposPage", mock.Anything, 2).Return(page2, nil).Once()
				f.On("ListReposPage", mock.Anything, 3).Return([]domain.RepositoryRef{}, nil).Once()
			},
			expected: []domain.RepositoryRef{
				{Name: "dotfiles", OwnerLogin: "alice"},
				{Name: "blog", OwnerLogin: "alice"},
				{Name: "ghloc", OwnerLogin: "alice"},
			},
		},
		{
			name: "empty account - first page is empty",
			setup: func(f *mockFetcher) {
				f.On("ListReposPage", mock.Anything, 1).Return([]domain.RepositoryRef{}, nil).Once()
			},
			expected: []domain.RepositoryRef{},
		},
		{
			name: "rejected later page - keeps what was collected",
			setup: func(f *mockFetcher) {
				f.On("ListReposPage", mock.Anything, 1).Return(page1, nil).Once()
				f.On("ListReposPage", mock.Anything, 2).Return(nil, &domain.StatusError{StatusCode: 502}).Once()
			},
			expected: []domain.RepositoryRef{
				{Name: "dotfiles", OwnerLogin: "alice"},
				{Name: "blog", OwnerLogin: "alice"},
			},
		},
		{
			name: "rejected first page - auth error",
			setup: func(f *mockFetcher) {
				f.On("ListReposPage", mock.Anything, 1).Return(nil, &domain.StatusError{StatusCode: 401, Message: "Bad credentials"}).Once()
			},
			expectErr: func(t *testing.T, err error) {
				var authErr *domain.AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, 401, authErr.StatusCode)
			},
		},
		{
			name: "transport failure mid pagination - fails hard",
			setup: func(f *mockFetcher) {
				f.On("ListReposPage", mock.Anything, 1).Return(page1, nil).Once()
				f.On("ListReposPage", mock.Anything, 2).Return(nil, &domain.TransportError{Op: "list repos", Err: errors.New("connection reset")}).Once()
			},
			expectErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsTransport(err))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			tc.setup(fetcher)
			lister := NewRepoLister(fetcher, discardLogger())

			repos, err := lister.ListOwnedRepos(context.Background(), "alice")
			if tc.expectErr != nil {
				assert.Error(t, err)
				assert.Nil(t, repos)
				tc.expectErr(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, repos)
			}
			fetcher.AssertExpectations(t)
		})
	}
}
