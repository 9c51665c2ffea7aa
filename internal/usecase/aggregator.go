package usecase

import (
	"sort"

	"github.com/samber/lo"

	"github.com/naka-gawa/ghloc/internal/domain"
)

// Totals folds every week of every contributor of a result into repository totals.
func Totals(result domain.RepoResult) domain.RepoTotals {
	totals := domain.RepoTotals{RepoName: result.RepoName}
	for _, c := range result.Contributors {
		totals.Additions += lo.SumBy(c.Weeks, func(w domain.WeeklyDelta) int { return w.Additions })
		totals.Deletions += lo.SumBy(c.Weeks, func(w domain.WeeklyDelta) int { return w.Deletions })
		totals.Commits += lo.SumBy(c.Weeks, func(w domain.WeeklyDelta) int { return w.Commits })
	}
	return totals
}

// Aggregate builds the RunSummary of a run. It is pure: the completion order of the
// fetches does not matter because results are first put back into requested order,
// which is also the tie-break order of the ascending sort by additions.
func Aggregate(requested []domain.RepositoryRef, results []domain.RepoResult) domain.RunSummary {
	position := make(map[string]int, len(requested))
	for i, r := range requested {
		if _, seen := position[r.Name]; !seen {
			position[r.Name] = i
		}
	}
	rank := func(name string) int {
		if i, ok := position[name]; ok {
			return i
		}
		return len(requested)
	}

	ordered := make([]domain.RepoResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i].RepoName) < rank(ordered[j].RepoName)
	})

	rows := lo.Map(ordered, func(r domain.RepoResult, _ int) domain.RepoTotals { return Totals(r) })
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Additions < rows[j].Additions
	})

	investigated, unresolved := Reconcile(requested, results)
	givenUp := lo.FilterMap(results, func(r domain.RepoResult, _ int) (string, bool) {
		return r.RepoName, r.Outcome == domain.OutcomeGivenUp
	})
	sort.Strings(givenUp)

	summary := domain.RunSummary{
		PerRepo:             rows,
		InvestigatedCount:   len(investigated),
		RequestedCount:      len(lo.UniqBy(requested, func(r domain.RepositoryRef) string { return r.Name })),
		UnresolvedRepoNames: unresolved,
		GivenUpRepoNames:    givenUp,
	}
	for _, row := range rows {
		summary.TotalAdditions += row.Additions
		summary.TotalDeletions += row.Deletions
		summary.TotalCommits += row.Commits
	}
	return summary
}
