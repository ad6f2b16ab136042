package core

import (
	"errors"
	"testing"
	"time"

	"github.com/relicworks/archeologist/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func churnConfig() *contract.Config {
	return &contract.Config{
		ProjectRoot:      "/proj",
		SourceDir:        "Source",
		CommitWindow:     contract.DefaultCommitWindow,
		ChurnTopN:        contract.DefaultChurnTopN,
		ShotgunThreshold: contract.DefaultShotgunThreshold,
	}
}

const sampleLog = `--aaa111|Fix enemy spawning|2026-07-01T10:00:00Z
Source/Enemy.cpp
Source/Enemy.h

--bbb222|Tune weapon damage|2026-07-02T11:00:00Z
Source/Weapon.cpp

--ccc333|Rework combat|2026-07-03T12:00:00Z
Source/Enemy.cpp
Source/Weapon.cpp
Source/Combat.cpp
`

// TestAnalyzeChurn tests log aggregation and per-file enrichment.
func TestAnalyzeChurn(t *testing.T) {
	t.Run("aggregates commits per file", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("IsRepository", mock.Anything, "/proj").Return(true)
		client.On("RecentCommitLog", mock.Anything, "/proj", contract.DefaultCommitWindow, "Source").Return([]byte(sampleLog), nil)
		client.On("CountFileAuthors", mock.Anything, "/proj", "Source/Enemy.cpp").Return(3, nil)
		client.On("CountFileAuthors", mock.Anything, "/proj", mock.Anything).Return(1, nil)
		lastMod := time.Date(2026, 7, 3, 12, 0, 0, 0, time.UTC)
		client.On("FileLastModified", mock.Anything, "/proj", mock.Anything).Return(lastMod, nil)

		churn, _ := analyzeChurn(t.Context(), churnConfig(), client)

		require.NotEmpty(t, churn)
		assert.Equal(t, "Source/Enemy.cpp", churn[0].File, "most-touched file ranks first")
		assert.Equal(t, 2, churn[0].Commits)
		assert.Equal(t, 3, churn[0].Authors)
		assert.Equal(t, lastMod, churn[0].LastModified)
	})

	t.Run("not a repository degrades to empty", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("IsRepository", mock.Anything, "/proj").Return(false)

		churn, surgeries := analyzeChurn(t.Context(), churnConfig(), client)
		assert.Empty(t, churn)
		assert.Empty(t, surgeries)
	})

	t.Run("log failure degrades to empty", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("IsRepository", mock.Anything, "/proj").Return(true)
		client.On("RecentCommitLog", mock.Anything, "/proj", mock.Anything, mock.Anything).Return([]byte(nil), errors.New("git exploded"))

		churn, surgeries := analyzeChurn(t.Context(), churnConfig(), client)
		assert.Empty(t, churn)
		assert.Empty(t, surgeries)
	})

	t.Run("per-file query failure keeps the entry", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("IsRepository", mock.Anything, "/proj").Return(true)
		client.On("RecentCommitLog", mock.Anything, "/proj", mock.Anything, mock.Anything).Return([]byte(sampleLog), nil)
		client.On("CountFileAuthors", mock.Anything, "/proj", mock.Anything).Return(0, errors.New("boom"))
		client.On("FileLastModified", mock.Anything, "/proj", mock.Anything).Return(time.Time{}, errors.New("boom"))

		churn, _ := analyzeChurn(t.Context(), churnConfig(), client)
		require.NotEmpty(t, churn)
		assert.Equal(t, 0, churn[0].Authors)
		assert.True(t, churn[0].LastModified.IsZero())
	})

	t.Run("caps to top N files", func(t *testing.T) {
		log := "--abc|big|2026-07-01T00:00:00Z\n"
		for i := range 10 {
			log += "Source/F" + string(rune('a'+i)) + ".cpp\n"
		}
		cfg := churnConfig()
		cfg.ChurnTopN = 3
		cfg.ShotgunThreshold = 100

		client := &contract.MockGitClient{}
		client.On("IsRepository", mock.Anything, "/proj").Return(true)
		client.On("RecentCommitLog", mock.Anything, "/proj", mock.Anything, mock.Anything).Return([]byte(log), nil)
		client.On("CountFileAuthors", mock.Anything, "/proj", mock.Anything).Return(1, nil)
		client.On("FileLastModified", mock.Anything, "/proj", mock.Anything).Return(time.Now(), nil)

		churn, _ := analyzeChurn(t.Context(), cfg, client)
		assert.Len(t, churn, 3)
	})
}

// TestParseCommitLog tests shotgun-surgery extraction.
func TestParseCommitLog(t *testing.T) {
	t.Run("flags commits at or above the threshold", func(t *testing.T) {
		counts, surgeries := parseCommitLog(sampleLog, 3)

		assert.Equal(t, 2, counts["Source/Enemy.cpp"])
		assert.Equal(t, 2, counts["Source/Weapon.cpp"])
		require.Len(t, surgeries, 1)
		assert.Equal(t, "ccc333", surgeries[0].Commit)
		assert.Equal(t, "Rework combat", surgeries[0].Message)
		assert.Equal(t, 3, surgeries[0].FilesChanged)
		assert.Equal(t, time.Date(2026, 7, 3, 12, 0, 0, 0, time.UTC), surgeries[0].Date)
	})

	t.Run("empty log yields empty results", func(t *testing.T) {
		counts, surgeries := parseCommitLog("", 10)
		assert.Empty(t, counts)
		assert.Empty(t, surgeries)
	})

	t.Run("commit subjects containing pipes survive", func(t *testing.T) {
		log := "--ddd|Fix a|b split|2026-07-01T00:00:00Z\nSource/X.cpp\n"
		counts, _ := parseCommitLog(log, 100)
		assert.Equal(t, 1, counts["Source/X.cpp"])
	})
}
