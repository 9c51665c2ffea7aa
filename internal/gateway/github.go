// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/ghloc/internal/domain"
)

// reposPerPage is the page size used when listing repositories.
const reposPerPage = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// ListReposPage returns one page (1-based) of the repositories visible to the token.
	ListReposPage(ctx context.Context, page int) ([]domain.RepositoryRef, error)
	// ContributorStats performs a single request to the contributor statistics endpoint
	// and classifies the response. It never retries.
	ContributorStats(ctx context.Context, repo domain.RepositoryRef) ([]domain.ContributorRecord, StatsSignal, error)
	// Viewer returns the login the token authenticates as.
	Viewer(ctx context.Context) (string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	limiter       *rate.Limiter
	logger        logrus.FieldLogger
}

// Option configures a GitHubGateway.
type Option func(*GitHubGateway)

// WithRequestsPerSecond paces every request made by the gateway.
// A non-positive value disables pacing.
func WithRequestsPerSecond(rps float64) Option {
	return func(g *GitHubGateway) {
		if rps > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger logrus.FieldLogger, opts ...Option) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return newGateway(github.NewClient(httpClient), githubv4.NewClient(httpClient), logger, opts...), nil
}

func newGateway(rest *github.Client, graphql *githubv4.Client, logger logrus.FieldLogger, opts ...Option) *GitHubGateway {
	g := &GitHubGateway{
		restClient:    rest,
		graphqlClient: graphql,
		limiter:       rate.NewLimiter(rate.Inf, 1),
		logger:        logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GitHubGateway) ListReposPage(ctx context.Context, page int) ([]domain.RepositoryRef, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Op: "list repos", Err: err}
	}
	g.logger.Debugf("Fetching repository page %d...", page)
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: reposPerPage, Page: page},
	}
	repos, resp, err := g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		if status := statusCode(resp); status != 0 {
			return nil, &domain.StatusError{StatusCode: status, Message: errorMessage(err)}
		}
		return nil, &domain.TransportError{Op: "list repos", Err: err}
	}

	refs := make([]domain.RepositoryRef, 0, len(repos))
	for _, repo := range repos {
		refs = append(refs, domain.RepositoryRef{
			Name:       repo.GetName(),
			OwnerLogin: repo.GetOwner().GetLogin(),
		})
	}
	return refs, nil
}

func (g *GitHubGateway) ContributorStats(ctx context.Context, repo domain.RepositoryRef) ([]domain.ContributorRecord, StatsSignal, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, SignalTransport, &domain.TransportError{Op: "contributor stats", Err: err}
	}
	g.logger.Debugf("Requesting contributor statistics for %s/%s", repo.OwnerLogin, repo.Name)
	stats, resp, err := g.restClient.Repositories.ListContributorsStats(ctx, repo.OwnerLogin, repo.Name)
	signal := classify(statusCode(resp), err)
	switch signal {
	case SignalReady:
		return toContributorRecords(stats), signal, nil
	case SignalTransport:
		return nil, signal, &domain.TransportError{Op: "contributor stats", Err: err}
	case SignalMalformed:
		return nil, signal, fmt.Errorf("failed to decode contributor statistics: %w", err)
	case SignalUnexpected, SignalForbidden:
		return nil, signal, &domain.StatusError{StatusCode: statusCode(resp), Message: errorMessage(err)}
	default:
		return nil, signal, nil
	}
}

// Viewer resolves the login of the authenticated user through the GraphQL API.
func (g *GitHubGateway) Viewer(ctx context.Context) (string, error) {
	var q struct {
		Viewer struct {
			Login githubv4.String
		}
	}
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return "", fmt.Errorf("failed to execute GraphQL viewer query: %w", err)
	}
	return string(q.Viewer.Login), nil
}

func toContributorRecords(stats []*github.ContributorStats) []domain.ContributorRecord {
	records := make([]domain.ContributorRecord, 0, len(stats))
	for _, s := range stats {
		weeks := make([]domain.WeeklyDelta, 0, len(s.Weeks))
		for _, w := range s.Weeks {
			weeks = append(weeks, domain.WeeklyDelta{
				WeekStart: w.GetWeek().Unix(),
				Additions: w.GetAdditions(),
				Deletions: w.GetDeletions(),
				Commits:   w.GetCommits(),
			})
		}
		records = append(records, domain.ContributorRecord{
			TotalCommits: s.GetTotal(),
			Weeks:        weeks,
			AuthorLogin:  s.GetAuthor().GetLogin(),
		})
	}
	return records
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

func errorMessage(err error) string {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Message
	}
	var rlErr *github.RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr.Message
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Message
	}
	return err.Error()
}
