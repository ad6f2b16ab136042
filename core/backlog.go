package core

import (
	"sort"

	"github.com/relicworks/archeologist/schema"
)

// synthesizeBacklog fuses detector output with churn data into a
// descending-sorted refactoring backlog capped to limit items.
//
// Score = hit count x churn value, where churn defaults to 1 when the file
// has no churn record - never zero, so purely static findings are not
// erased from the ranking for untracked files.
func synthesizeBacklog(hits []schema.AntiPatternHit, churn []schema.FileChurn, limit int) []schema.RefactoringItem {
	churnByFile := make(map[string]int, len(churn))
	for _, c := range churn {
		churnByFile[c.File] = c.Commits
	}

	// Group hits by file, preserving first-seen order for the stable
	// tie-break, and track the highest-severity/category pair per file.
	type fileAgg struct {
		count       int
		topSeverity schema.Severity
		topCategory schema.Category
	}
	aggs := make(map[string]*fileAgg)
	var order []string

	for _, h := range hits {
		agg, ok := aggs[h.File]
		if !ok {
			agg = &fileAgg{topSeverity: h.Severity, topCategory: h.Category}
			aggs[h.File] = agg
			order = append(order, h.File)
		}
		agg.count++
		// Severity order: critical > warning > info; ties keep the
		// first-seen category.
		if schema.MoreSevere(h.Severity, agg.topSeverity) {
			agg.topSeverity = h.Severity
			agg.topCategory = h.Category
		}
	}

	items := make([]schema.RefactoringItem, 0, len(order))
	for _, file := range order {
		agg := aggs[file]
		churnValue := churnByFile[file]
		if churnValue < 1 {
			churnValue = 1
		}
		items = append(items, schema.RefactoringItem{
			File:         file,
			Score:        agg.count * churnValue,
			Churn:        churnValue,
			AntiPatterns: agg.count,
			TopCategory:  agg.topCategory,
			TopSeverity:  agg.topSeverity,
		})
	}

	// Descending by score; SliceStable keeps original file iteration order
	// on ties.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
