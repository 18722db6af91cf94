// Package report packages conversion output for downstream consumers: an
// envelope with the articles, a count, and generation metadata, persisted
// as timestamped JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"econwatch/articles"
)

// filePrefix names every report file the store writes.
const filePrefix = "processed_articles_"

// Metadata describes one conversion run.
type Metadata struct {
	TotalArticles int       `json:"total_articles"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	GenerationID  uuid.UUID `json:"generation_id"`
	OriginalFile  string    `json:"original_file,omitempty"`
}

// Report is the output envelope for one conversion run.
type Report struct {
	Success  bool               `json:"success"`
	Articles []articles.Article `json:"articles"`
	Metadata Metadata           `json:"metadata"`
}

// New builds a report for the given articles. originalFile names the saved
// extraction the articles came from, empty for live runs.
func New(items []articles.Article, originalFile string) Report {
	return Report{
		Success:  true,
		Articles: items,
		Metadata: Metadata{
			TotalArticles: len(items),
			Timestamp:     time.Now().UTC(),
			Source:        articles.FeedSource,
			GenerationID:  uuid.New(),
			OriginalFile:  originalFile,
		},
	}
}

// FileStore writes reports into a directory, one timestamped JSON file per
// run.
type FileStore struct {
	dir string
}

// NewFileStore creates the store, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Write persists the report and returns the path it was written to.
func (s *FileStore) Write(r Report) (string, error) {
	name := filePrefix + r.Metadata.Timestamp.Format("20060102_150405") + ".json"
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

// List returns all stored reports, oldest first. File names embed the run
// timestamp, so lexical order is chronological order.
func (s *FileStore) List() ([]Report, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var reports []Report
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", name, err)
		}

		var r Report
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal file %s: %w", name, err)
		}

		reports = append(reports, r)
	}

	return reports, nil
}

// Latest returns the most recent report, or nil when none exist.
func (s *FileStore) Latest() (*Report, error) {
	reports, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return &reports[len(reports)-1], nil
}
