package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertranjan/gh-top-projects/internal/domain"
)

func rustScenario() []domain.RepositoryDetail {
	return []domain.RepositoryDetail{
		{
			RepositorySummary: domain.RepositorySummary{
				Name: "tokio", Owner: "tokio-rs", FullName: "tokio-rs/tokio",
				Stars: 4900, Forks: 450, URL: "https://github.com/tokio-rs/tokio",
				Description: "An asynchronous runtime",
			},
			ContributorCount: 88, RecentCommitCount: 120,
		},
		{
			RepositorySummary: domain.RepositorySummary{
				Name: "ripgrep", Owner: "BurntSushi", FullName: "BurntSushi/ripgrep",
				Stars: 3200, Forks: 210, URL: "https://github.com/BurntSushi/ripgrep",
				Description: "Recursively search directories",
			},
			ContributorCount: 61, RecentCommitCount: 14,
		},
		{
			RepositorySummary: domain.RepositorySummary{
				Name: "bat", Owner: "sharkdp", FullName: "sharkdp/bat",
				Stars: 1100, Forks: 90, URL: "https://github.com/sharkdp/bat",
				Description: "", Archived: true,
			},
			ContributorCount: 0, RecentCommitCount: 0,
		},
	}
}

func TestCSVExporter_Write_DetailColumns(t *testing.T) {
	var buf bytes.Buffer

	err := NewCSV(DetailColumns()).Write(&buf, rustScenario())
	require.NoError(t, err)

	expected := "name,stars,forks,url,description,archived,contributor_count,recent_commit_count\n" +
		"tokio,4900,450,https://github.com/tokio-rs/tokio,An asynchronous runtime,false,88,120\n" +
		"ripgrep,3200,210,https://github.com/BurntSushi/ripgrep,Recursively search directories,false,61,14\n" +
		"bat,1100,90,https://github.com/sharkdp/bat,,true,0,0\n"
	assert.Equal(t, expected, buf.String(), "one header row plus one row per repository, in input order")
}

func TestCSVExporter_Write_SummaryColumns(t *testing.T) {
	var buf bytes.Buffer

	err := NewCSV(SummaryColumns()).Write(&buf, rustScenario()[:1])
	require.NoError(t, err)

	assert.Equal(t,
		"name,stars,forks,url,description\n"+
			"tokio,4900,450,https://github.com/tokio-rs/tokio,An asynchronous runtime\n",
		buf.String(), "the summary set must not leak enrichment columns")
}

func TestCSVExporter_Write_QuotesAwkwardDescriptions(t *testing.T) {
	repos := []domain.RepositoryDetail{
		{RepositorySummary: domain.RepositorySummary{Name: "a", Description: "has, comma"}},
		{RepositorySummary: domain.RepositorySummary{Name: "b", Description: "line one\nline two"}},
	}
	var buf bytes.Buffer

	err := NewCSV(SummaryColumns()).Write(&buf, repos)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"has, comma"`)
	assert.Contains(t, buf.String(), "\"line one\nline two\"")
}

func TestCSVExporter_Write_IsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	exporter := NewCSV(DetailColumns())

	require.NoError(t, exporter.Write(&first, rustScenario()))
	require.NoError(t, exporter.Write(&second, rustScenario()))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestCSVExporter_WriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.csv")
	stale := bytes.Repeat([]byte("stale data that is much longer than the real export\n"), 50)
	require.NoError(t, os.WriteFile(path, stale, 0o644))
	exporter := NewCSV(DetailColumns())

	require.NoError(t, exporter.WriteFile(path, rustScenario()))
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)

	var expected bytes.Buffer
	require.NoError(t, exporter.Write(&expected, rustScenario()))
	assert.Equal(t, expected.Bytes(), onDisk, "an existing destination is fully replaced")

	// A second export of the same sequence is byte-identical.
	require.NoError(t, exporter.WriteFile(path, rustScenario()))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, onDisk, again)
}
