// Package export serializes collected repositories to delimited tabular files.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/robertranjan/gh-top-projects/internal/domain"
)

// Column maps one output field to a header and a per-row value.
type Column struct {
	Header string
	Value  func(domain.RepositoryDetail) string
}

// SummaryColumns is the column set for un-enriched results.
func SummaryColumns() []Column {
	return []Column{
		{Header: "name", Value: func(d domain.RepositoryDetail) string { return d.Name }},
		{Header: "stars", Value: func(d domain.RepositoryDetail) string { return strconv.Itoa(d.Stars) }},
		{Header: "forks", Value: func(d domain.RepositoryDetail) string { return strconv.Itoa(d.Forks) }},
		{Header: "url", Value: func(d domain.RepositoryDetail) string { return d.URL }},
		{Header: "description", Value: func(d domain.RepositoryDetail) string { return d.Description }},
	}
}

// DetailColumns extends SummaryColumns with the enrichment fields.
func DetailColumns() []Column {
	return append(SummaryColumns(),
		Column{Header: "archived", Value: func(d domain.RepositoryDetail) string { return strconv.FormatBool(d.Archived) }},
		Column{Header: "contributor_count", Value: func(d domain.RepositoryDetail) string { return strconv.Itoa(d.ContributorCount) }},
		Column{Header: "recent_commit_count", Value: func(d domain.RepositoryDetail) string { return strconv.Itoa(d.RecentCommitCount) }},
	)
}

// CSVExporter writes repositories as comma-separated rows under a fixed
// header, with the column set chosen at construction time.
type CSVExporter struct {
	columns []Column
}

// NewCSV creates an exporter over the given column set.
func NewCSV(columns []Column) *CSVExporter {
	return &CSVExporter{columns: columns}
}

// Write emits the header row followed by one row per repository, in the
// order given. The same sequence always produces byte-identical output.
func (e *CSVExporter) Write(w io.Writer, repos []domain.RepositoryDetail) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(e.columns))
	for i, col := range e.columns {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(e.columns))
	for _, repo := range repos {
		for i, col := range e.columns {
			row[i] = col.Value(repo)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the rows to path, replacing any existing file.
func (e *CSVExporter) WriteFile(path string, repos []domain.RepositoryDetail) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.Write(f, repos); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
