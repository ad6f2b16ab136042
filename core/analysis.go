package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/schema"
)

// scanStage labels the orchestrator's progression through one invocation.
// The state machine is per invocation, never persistent.
type scanStage string

const (
	stageCollecting    scanStage = "collecting"
	stageReading       scanStage = "reading"
	stageDetecting     scanStage = "detecting"
	stageGraphAnalysis scanStage = "graph-analysis"
	stageChurnAnalysis scanStage = "churn-analysis"
	stageSynthesizing  scanStage = "synthesizing"
	stageDone          scanStage = "done"
)

// ScanProject runs the full analysis pipeline once and assembles the
// immutable report. Each stage's failure is contained at the narrowest
// possible scope: a bad file is skipped, not the whole stage. Only
// catastrophic errors (the root path does not exist or is not a directory)
// propagate to the caller, in which case no partial work is performed.
// The context aborts the scan between stages and inside subprocess calls.
func ScanProject(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.ArcheologistAnalysis, error) {
	started := time.Now()

	info, err := os.Stat(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("project root %q does not exist: %w", cfg.ProjectRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %q is not a directory", cfg.ProjectRoot)
	}

	scanRoot := filepath.Join(cfg.ProjectRoot, cfg.SourceDir)
	if fi, err := os.Stat(scanRoot); err != nil || !fi.IsDir() {
		// No dedicated source directory; scan the root itself.
		scanRoot = cfg.ProjectRoot
	}

	// --- 1. Collection ---
	stage := stageCollecting
	if err := ctx.Err(); err != nil {
		return nil, stageAborted(stage, err)
	}
	paths := collectSourceFiles(scanRoot, cfg.MaxDepth, cfg.MaxFiles, cfg.Excludes)

	// --- 2. Batched Reading ---
	stage = stageReading
	if err := ctx.Err(); err != nil {
		return nil, stageAborted(stage, err)
	}
	files := readSourceFiles(paths, cfg.ProjectRoot, cfg.ReadBatchSize)

	// --- 3. Text Detection ---
	stage = stageDetecting
	if err := ctx.Err(); err != nil {
		return nil, stageAborted(stage, err)
	}
	var hits []schema.AntiPatternHit
	for _, f := range files {
		hits = append(hits, runTextDetectors(f.content, f.relPath)...)
	}

	// --- 4. Include Graph Analysis ---
	stage = stageGraphAnalysis
	if err := ctx.Err(); err != nil {
		return nil, stageAborted(stage, err)
	}
	graph, headerPaths := buildIncludeGraph(files)
	hits = append(hits, detectIncludeCycles(graph, headerPaths)...)

	// --- 5. Churn Analysis ---
	stage = stageChurnAnalysis
	if err := ctx.Err(); err != nil {
		return nil, stageAborted(stage, err)
	}
	churn, surgeries := analyzeChurn(ctx, cfg, client)

	// --- 6. Backlog Synthesis and Assembly ---
	stage = stageSynthesizing
	if err := ctx.Err(); err != nil {
		return nil, stageAborted(stage, err)
	}
	backlog := synthesizeBacklog(hits, churn, cfg.BacklogLimit)

	schema.AssignHitIDs(hits)
	bySeverity, byCategory := schema.TallyHits(hits)

	report := &schema.ArcheologistAnalysis{
		ScanTime:           started,
		DurationMs:         time.Since(started).Milliseconds(),
		ProjectRoot:        cfg.ProjectRoot,
		TotalFiles:         len(files),
		TotalAntiPatterns:  len(hits),
		BySeverity:         bySeverity,
		ByCategory:         byCategory,
		AntiPatterns:       nonNilHits(hits),
		Churn:              churn,
		ShotgunSurgeries:   surgeries,
		RefactoringBacklog: backlog,
	}

	return report, nil
}

// readSourceFiles loads file contents in fixed-size batches executed
// concurrently within a batch, then awaited together, bounding open file
// descriptors and memory pressure while overlapping I/O latency. Unreadable
// files are skipped; a single read error never aborts the stage.
func readSourceFiles(paths []string, projectRoot string, batchSize int) []sourceFile {
	if batchSize < 1 {
		batchSize = 1
	}
	files := make([]sourceFile, 0, len(paths))

	for start := 0; start < len(paths); start += batchSize {
		batch := paths[start:min(start+batchSize, len(paths))]
		loaded := make([]*sourceFile, len(batch))

		var wg sync.WaitGroup
		for i, p := range batch {
			wg.Go(func() {
				data, err := os.ReadFile(p)
				if err != nil {
					return // Skipped; containment at the narrowest scope
				}
				rel, err := filepath.Rel(projectRoot, p)
				if err != nil {
					rel = p
				}
				loaded[i] = &sourceFile{
					absPath: p,
					relPath: filepath.ToSlash(rel),
					content: string(data),
				}
			})
		}
		wg.Wait()

		for _, f := range loaded {
			if f != nil {
				files = append(files, *f)
			}
		}
	}
	return files
}

// nonNilHits normalizes a nil hit slice to an empty one so the report is
// always well-formed JSON.
func nonNilHits(hits []schema.AntiPatternHit) []schema.AntiPatternHit {
	if hits == nil {
		return []schema.AntiPatternHit{}
	}
	return hits
}

func stageAborted(stage scanStage, err error) error {
	return fmt.Errorf("scan aborted during %s: %w", stage, err)
}
