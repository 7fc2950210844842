package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/librarian"
	"github.com/poiesic/librarian/ai"
	"github.com/poiesic/librarian/catalog"
	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/recommend"
	"github.com/poiesic/librarian/server"
	"github.com/urfave/cli/v2"
)

// openLibrary opens the database named by the global flags.
func openLibrary(c *cli.Context) (*librarian.Library, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithGenerationModel(c.String("generation-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	lib, err := librarian.Open(dbPath,
		librarian.WithAIConfig(aiConfig),
		librarian.WithTopK(c.Int("top-k")),
		librarian.WithCacheSize(c.Int("cache-size")),
		librarian.WithCacheTTL(c.Duration("cache-ttl")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func indexCommand(c *cli.Context) error {
	ctx := c.Context

	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("report-interval") <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	books := catalog.DefaultBooks()
	if path := c.String("file"); path != "" {
		var err error
		if books, err = catalog.ReadFile(path); err != nil {
			return err
		}
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	opts := []catalog.IndexerOption{
		catalog.WithBatchSize(c.Int("batch-size")),
		catalog.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		catalog.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	}

	var indexer *catalog.Indexer
	if c.Bool("skip-embeddings") {
		indexer, err = catalog.NewIndexer(lib.BookRepository(), nil, opts...)
	} else {
		fmt.Fprintf(c.App.ErrWriter, "Embedding host: %s\n", c.String("host"))
		fmt.Fprintf(c.App.ErrWriter, "Embedding model: %s\n", c.String("embedding-model"))
		indexer, err = lib.NewIndexer(opts...)
	}
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer indexer.Release()

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", c.String("db"))
	cat, err := indexer.Index(ctx, books)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Indexed %d books (%d dimensions)\n", cat.Len(), cat.Dimensions())
	return nil
}

func recommendCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	result, err := lib.Recommend(c.Context, query)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			fmt.Fprintln(c.App.ErrWriter, core.EmptyQueryPrompt)
			return nil
		}
		return err
	}

	w := c.App.Writer
	switch result.State {
	case recommend.StateMatched:
		for i, title := range result.Titles {
			fmt.Fprintf(w, "%d. %s\n", i+1, title)
			if c.Bool("expand") {
				fmt.Fprintf(w, "\n%s\n\n", lib.Summary(c.Context, title))
			}
		}
	case recommend.StateSynthesized:
		book := result.Synthesized
		fmt.Fprintln(w, "No catalog match. Here's something new:")
		switch book.Status {
		case recommend.ParseUnparsed:
			fmt.Fprintln(w, book.Raw)
		default:
			fmt.Fprintf(w, "%s\n\n%s\n", book.Title, book.Summary)
		}
	}
	return nil
}

func summaryCommand(c *cli.Context) error {
	title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if title == "" {
		return fmt.Errorf("title is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	if !lib.Catalog().Contains(title) {
		fmt.Fprintf(c.App.ErrWriter, "%q is not in the catalog; writing a summary from scratch\n", title)
	}
	fmt.Fprintln(c.App.Writer, lib.Summary(c.Context, title))
	return nil
}

func titlesCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	for _, title := range lib.Titles() {
		fmt.Fprintln(c.App.Writer, title)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	srv, err := server.New(lib,
		server.WithRequestTimeout(c.Duration("timeout")),
		server.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, c.String("addr"))
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
