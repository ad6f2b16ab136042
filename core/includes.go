package core

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/relicworks/archeologist/schema"
)

// maxIncludeChainLength bounds the cycle search depth so pathological
// include webs stay cheap to analyze.
const maxIncludeChainLength = 6

// Quoted (local) include directives only; angle-bracket system includes
// never participate in project-level cycles.
var includeRe = regexp.MustCompile(`(?m)^\s*#include\s+"([^"]+)"`)

// buildIncludeGraph parses every local include directive out of each
// header's text. The graph is keyed by basename only, not full path, to
// tolerate duplicate-named headers in different directories; the returned
// map also tracks the first-seen repo-relative path per basename for hit
// attribution. Basename keying can merge distinct headers that share a
// filename, producing spurious or missed cycles - a known precision
// trade-off, kept deliberately.
func buildIncludeGraph(files []sourceFile) (schema.IncludeGraph, map[string]string) {
	graph := make(schema.IncludeGraph)
	paths := make(map[string]string)

	for _, f := range files {
		if !isHeaderFile(f.relPath) {
			continue
		}
		base := path.Base(f.relPath)
		if _, seen := paths[base]; !seen {
			paths[base] = f.relPath
		}
		var includes []string
		for _, m := range includeRe.FindAllStringSubmatch(f.content, -1) {
			includes = append(includes, path.Base(m[1]))
		}
		graph[base] = includes
	}
	return graph, paths
}

// detectIncludeCycles performs a depth-bounded search from every graph
// node. A cycle is confirmed when the search returns to the starting node
// via a chain of length greater than one. Each discovered cycle is reduced
// to a canonical key (its sorted node set) so the same cycle reached via
// different starting nodes or traversal order is reported exactly once.
func detectIncludeCycles(graph schema.IncludeGraph, paths map[string]string) []schema.AntiPatternHit {
	starts := make([]string, 0, len(graph))
	for node := range graph {
		starts = append(starts, node)
	}
	sort.Strings(starts) // Deterministic regardless of collection order

	seen := make(map[string]struct{})
	var hits []schema.AntiPatternHit

	for _, start := range starts {
		chains := findCyclesFrom(graph, start)
		for _, chain := range chains {
			key := canonicalCycleKey(chain)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			file := paths[chain[0]]
			if file == "" {
				file = chain[0]
			}
			hits = append(hits, schema.AntiPatternHit{
				Category:   schema.CategoryCircularInclude,
				Severity:   schema.SeverityWarning,
				File:       file,
				Message:    fmt.Sprintf("Circular include chain: %s", strings.Join(chain, " -> ")),
				Suggestion: "Break the cycle with a forward declaration or by moving shared types into a separate header",
			})
		}
	}
	return hits
}

// findCyclesFrom returns every chain that leaves start and returns to it
// within the depth bound. Chains are rendered closed (start appears at
// both ends).
func findCyclesFrom(graph schema.IncludeGraph, start string) [][]string {
	var cycles [][]string
	var walk func(node string, chain []string)

	walk = func(node string, chain []string) {
		if len(chain) > maxIncludeChainLength {
			return
		}
		for _, next := range graph[node] {
			if next == start && len(chain) > 1 {
				closed := make([]string, len(chain)+1)
				copy(closed, chain)
				closed[len(chain)] = start
				cycles = append(cycles, closed)
				continue
			}
			if containsNode(chain, next) {
				continue // Inner loop not through start; handled from its own start node
			}
			if _, known := graph[next]; !known {
				continue // Include of a header outside the scanned set
			}
			walk(next, append(chain, next))
		}
	}

	walk(start, []string{start})
	return cycles
}

// canonicalCycleKey builds the dedup key for a closed chain: its node set,
// sorted and joined.
func canonicalCycleKey(chain []string) string {
	nodes := make([]string, 0, len(chain)-1)
	seen := make(map[string]struct{}, len(chain))
	for _, n := range chain {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return strings.Join(nodes, "|")
}

func containsNode(chain []string, node string) bool {
	for _, n := range chain {
		if n == node {
			return true
		}
	}
	return false
}
