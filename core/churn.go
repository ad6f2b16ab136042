package core

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/schema"
)

// analyzeChurn computes per-file modification frequency, author diversity
// and shotgun-surgery commits from recent version-control history. Churn
// data is enrichment, never a hard dependency of the report: if the project
// is not under version control, the tool is unavailable, or any individual
// query fails, the analyzer degrades to empty results rather than raising.
func analyzeChurn(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.FileChurn, []schema.ShotgunSurgery) {
	if client == nil || !client.IsRepository(ctx, cfg.ProjectRoot) {
		return []schema.FileChurn{}, []schema.ShotgunSurgery{}
	}

	out, err := client.RecentCommitLog(ctx, cfg.ProjectRoot, cfg.CommitWindow, cfg.SourceDir)
	if err != nil {
		contract.LogWarn("churn analysis unavailable", err)
		return []schema.FileChurn{}, []schema.ShotgunSurgery{}
	}

	commitCounts, surgeries := parseCommitLog(string(out), cfg.ShotgunThreshold)

	// Keep only the top N most-modified files to bound subprocess cost.
	files := make([]string, 0, len(commitCounts))
	for f := range commitCounts {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		if commitCounts[files[i]] != commitCounts[files[j]] {
			return commitCounts[files[i]] > commitCounts[files[j]]
		}
		return files[i] < files[j]
	})
	if len(files) > cfg.ChurnTopN {
		files = files[:cfg.ChurnTopN]
	}

	// Per-file queries are issued sequentially, one subprocess each.
	// TODO: fold author and last-modified attribution into the single log
	// walk above to avoid O(files) subprocess spawns on large histories.
	churn := make([]schema.FileChurn, 0, len(files))
	for _, f := range files {
		entry := schema.FileChurn{File: f, Commits: commitCounts[f]}
		if authors, err := client.CountFileAuthors(ctx, cfg.ProjectRoot, f); err == nil {
			entry.Authors = authors
		}
		if modified, err := client.FileLastModified(ctx, cfg.ProjectRoot, f); err == nil {
			entry.LastModified = modified
		}
		churn = append(churn, entry)
	}

	return churn, surgeries
}

// parseCommitLog parses "--<hash>|<subject>|<ISO date>" header lines
// followed by the touched file names, aggregating per-file commit counts
// and flagging commits whose file-change count meets the shotgun threshold.
func parseCommitLog(out string, shotgunThreshold int) (map[string]int, []schema.ShotgunSurgery) {
	commitCounts := make(map[string]int)
	surgeries := []schema.ShotgunSurgery{}

	var hash, subject string
	var date time.Time
	var filesChanged int
	inCommit := false

	flush := func() {
		if inCommit && filesChanged >= shotgunThreshold {
			surgeries = append(surgeries, schema.ShotgunSurgery{
				Commit:       hash,
				Message:      subject,
				FilesChanged: filesChanged,
				Date:         date,
			})
		}
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "--") {
			flush()
			parts := strings.SplitN(strings.TrimPrefix(line, "--"), "|", 3)
			hash, subject = parts[0], ""
			date, filesChanged, inCommit = time.Time{}, 0, true
			if len(parts) > 1 {
				subject = parts[1]
			}
			if len(parts) > 2 {
				if t, err := time.Parse(time.RFC3339, parts[2]); err == nil {
					date = t
				}
			}
			continue
		}
		if !inCommit {
			continue
		}
		commitCounts[line]++
		filesChanged++
	}
	flush()

	return commitCounts, surgeries
}
