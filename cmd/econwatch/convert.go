package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"econwatch/articles"
	"econwatch/config"
	"econwatch/extract"
	"econwatch/report"
)

// runConvert processes a saved extraction offline: a JSON scrape envelope
// or a raw markdown file, converted and written as a report.
func runConvert(log zerolog.Logger, cfg *config.Config, path string) error {
	markdown, err := readMarkdown(path)
	if err != nil {
		return err
	}

	items, err := articles.Convert(markdown)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if len(items) == 0 {
		return fmt.Errorf("no articles found in %s", path)
	}

	reports, err := report.NewFileStore(cfg.Reports.Dir)
	if err != nil {
		return err
	}

	out, err := reports.Write(report.New(items, filepath.Base(path)))
	if err != nil {
		return err
	}

	log.Info().Int("articles", len(items)).Str("path", out).Msg("converted saved extraction")
	for i, item := range items {
		if i >= 2 {
			break
		}
		log.Info().
			Str("title", item.Title).
			Str("category", item.Category).
			Str("published", item.PublishedAt).
			Msg("article")
	}

	return nil
}

// readMarkdown loads the markdown payload from path. JSON files are scrape
// envelopes and must carry success=true; anything else is read verbatim.
func readMarkdown(path string) (string, error) {
	if filepath.Ext(path) == ".json" {
		result, err := extract.ReadResult(path)
		if err != nil {
			return "", err
		}
		if !result.Success {
			return "", errors.New("saved extraction was not successful")
		}
		return result.Data.Markdown, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown file: %w", err)
	}
	return string(data), nil
}
