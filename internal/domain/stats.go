// Package domain contains the core data structures and domain logic for the application.
package domain

// RepositoryRef identifies one repository to investigate.
type RepositoryRef struct {
	Name       string `json:"name"`
	OwnerLogin string `json:"owner"`
}

// WeeklyDelta is one week of one contributor's activity on one repository.
type WeeklyDelta struct {
	WeekStart int64 `json:"w"`
	Additions int   `json:"a"`
	Deletions int   `json:"d"`
	Commits   int   `json:"c"`
}

// ContributorRecord holds the weekly activity of a single author on a repository.
type ContributorRecord struct {
	TotalCommits int           `json:"total"`
	Weeks        []WeeklyDelta `json:"weeks"`
	AuthorLogin  string        `json:"author"`
}

// Outcome records how a repository's fetch terminated.
// Every outcome other than OutcomeReady carries no contributors.
type Outcome int

const (
	OutcomeReady Outcome = iota
	OutcomeEmpty
	OutcomeMalformed
	OutcomeForbidden
	OutcomeGivenUp
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeEmpty:
		return "empty"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeGivenUp:
		return "given-up"
	default:
		return "unknown"
	}
}

// RepoResult is the terminal result of fetching contributor statistics for one repository.
type RepoResult struct {
	RepoName     string
	Contributors []ContributorRecord
	Outcome      Outcome
	Attempts     int
}

// RepoTotals holds the summed activity for a single repository.
type RepoTotals struct {
	RepoName  string `json:"name"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Commits   int    `json:"commits"`
}

// RunSummary is the aggregated result of a whole run.
// InvestigatedCount + len(UnresolvedRepoNames) always equals RequestedCount.
type RunSummary struct {
	PerRepo             []RepoTotals `json:"repos"`
	TotalAdditions      int          `json:"total_additions"`
	TotalDeletions      int          `json:"total_deletions"`
	TotalCommits        int          `json:"total_commits"`
	InvestigatedCount   int          `json:"investigated"`
	RequestedCount      int          `json:"requested"`
	UnresolvedRepoNames []string     `json:"unresolved"`
	GivenUpRepoNames    []string     `json:"given_up,omitempty"`
}
