package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"econwatch/config"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig() (*config.Config, error) {
	path := os.Getenv("ECONWATCH_CONFIG")
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch subcommand := os.Args[1]; subcommand {
	case "check":
		if err := runCheck(ctx, log, cfg); err != nil {
			log.Fatal().Err(err).Msg("check failed")
		}
	case "watch":
		if err := runWatch(ctx, log, cfg); err != nil {
			log.Fatal().Err(err).Msg("watch failed")
		}
	case "convert":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Error: convert requires a file argument")
			printUsage()
			os.Exit(1)
		}
		if err := runConvert(log, cfg, os.Args[2]); err != nil {
			log.Fatal().Err(err).Msg("convert failed")
		}
	case "serve":
		if err := runServe(ctx, log, cfg); err != nil {
			log.Fatal().Err(err).Msg("serve failed")
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`econwatch - economic news stream monitor

Usage:
  econwatch <command> [arguments]

Commands:
  check            Check the stream once and process a new top item
  watch            Run check on a schedule until interrupted
  convert <file>   Convert a saved extraction (JSON envelope or raw markdown)
  serve            Serve stored reports over HTTP
  help             Show this help

Environment:
  ECONWATCH_CONFIG   Config file path (default ~/.econwatch/config.yaml)
  ECONWATCH_API_KEY  Extraction API key`)
}
