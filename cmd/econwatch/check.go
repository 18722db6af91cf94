package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"econwatch/articles"
	"econwatch/config"
	"econwatch/extract"
	"econwatch/report"
	"econwatch/state"
	"econwatch/watch"
)

// buildSource selects the top-item detector from configuration.
func buildSource(cfg *config.Config) (watch.Source, error) {
	switch cfg.Stream.SourceType {
	case "", "website":
		return watch.NewWebsiteSource(cfg.Stream.URL, cfg.Stream.Selector), nil
	case "rss":
		if cfg.Stream.FeedURL == "" {
			return nil, errors.New("source_type rss requires stream.feed_url")
		}
		return watch.NewFeedSource(cfg.Stream.FeedURL), nil
	default:
		return nil, fmt.Errorf("unknown source_type: %s", cfg.Stream.SourceType)
	}
}

// openStateStore selects the last-seen store backend from configuration.
func openStateStore(cfg *config.Config) (state.Store, error) {
	switch cfg.State.Type {
	case "", "file":
		return state.NewFileStore(cfg.State.Path), nil
	case "sqlite":
		return state.NewSQLiteStore(cfg.State.Path)
	default:
		return nil, fmt.Errorf("unknown state type: %s", cfg.State.Type)
	}
}

// runCheck performs one monitoring pass: read the top item, compare it with
// the saved one, and on a change extract the page, convert it to articles,
// and write a report.
func runCheck(ctx context.Context, log zerolog.Logger, cfg *config.Config) error {
	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	top, err := source.Top(ctx)
	if errors.Is(err, watch.ErrNoItems) {
		log.Info().Msg("stream carries no items")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read stream top item: %w", err)
	}

	store, err := openStateStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	last, err := store.Load()
	if err != nil {
		return err
	}

	if !state.IsNew(top.Title, last) {
		log.Info().Str("title", top.Title).Msg("top item unchanged")
		return nil
	}

	previous := ""
	if last != nil {
		previous = last.Title
	}
	log.Info().Str("previous", previous).Str("current", top.Title).Msg("new top item detected")

	client := extract.NewClient(cfg.Extract.BaseURL, getEnv("ECONWATCH_API_KEY", ""))
	markdown, err := client.Markdown(ctx, cfg.Stream.URL)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	items, err := articles.Convert(markdown)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if len(items) == 0 {
		// Well-formed page with no recognizable articles. Remember the top
		// item so the same page isn't extracted again next pass.
		log.Warn().Msg("no articles found in extraction")
	} else {
		reports, err := report.NewFileStore(cfg.Reports.Dir)
		if err != nil {
			return err
		}

		path, err := reports.Write(report.New(items, ""))
		if err != nil {
			return err
		}
		log.Info().Int("articles", len(items)).Str("path", path).Msg("processed new stream item")
	}

	return store.Save(state.LastSeen{
		Title:       top.Title,
		URL:         top.URL,
		LastChecked: time.Now().UTC(),
	})
}

// runWatch runs check on the configured schedule until the context is
// cancelled.
func runWatch(ctx context.Context, log zerolog.Logger, cfg *config.Config) error {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(cfg.Watch.Schedule, func() {
		if err := runCheck(ctx, log, cfg); err != nil {
			log.Error().Err(err).Msg("scheduled check failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", cfg.Watch.Schedule, err)
	}

	log.Info().Str("schedule", cfg.Watch.Schedule).Str("url", cfg.Stream.URL).Msg("watching stream")
	scheduler.Start()

	<-ctx.Done()
	stopped := scheduler.Stop()
	<-stopped.Done()

	log.Info().Msg("watch stopped")
	return nil
}
