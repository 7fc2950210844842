// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/poiesic/librarian/ai"
	"github.com/poiesic/librarian/catalog"
	"github.com/poiesic/librarian/recommend"
	"github.com/poiesic/librarian/search"
	"github.com/poiesic/librarian/server"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "err", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "librarian",
		Usage: "Book recommendations from a small catalog, with generated summaries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LIBRARIAN_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "librarian-data",
				EnvVars: []string{"LIBRARIAN_DB"},
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "OpenAI-compatible API host URL",
				Value:   ai.DefaultHost,
				EnvVars: []string{"LIBRARIAN_HOST", "OPENAI_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for the generation and embedding services",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "generation-model",
				Usage:   "Chat model for summaries and fallback books",
				Value:   ai.DefaultGenerationModel,
				EnvVars: []string{"LIBRARIAN_GENERATION_MODEL"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model for catalog indexing",
				Value:   ai.DefaultEmbeddingModel,
				EnvVars: []string{"LIBRARIAN_EMBEDDING_MODEL"},
			},
			&cli.IntFlag{
				Name:    "top-k",
				Usage:   "Maximum number of matched titles per recommendation",
				Value:   search.DefaultLimit,
				EnvVars: []string{"LIBRARIAN_TOP_K"},
			},
			&cli.IntFlag{
				Name:  "cache-size",
				Usage: "Entries kept in each generation cache",
				Value: recommend.DefaultCacheSize,
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "Lifetime of cached generations",
				Value: recommend.DefaultCacheTTL,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Store a catalog and embed its short summaries",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "JSON catalog file (defaults to the built-in catalog)",
					},
					&cli.BoolFlag{
						Name:  "skip-embeddings",
						Usage: "Store books without calling the embedding service",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of summaries to embed per request",
						Value: catalog.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N books",
						Value: catalog.DefaultReportInterval,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per batch",
						Value: catalog.DefaultMaxRetries,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: catalog.DefaultRetryDelay,
					},
				},
			},
			{
				Name:      "recommend",
				Usage:     "Recommend books for a description or keywords",
				ArgsUsage: "<query>",
				Action:    recommendCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "expand",
						Aliases: []string{"e"},
						Usage:   "Print an expanded summary for each matched title",
					},
				},
			},
			{
				Name:      "summary",
				Usage:     "Print an expanded summary for a title",
				ArgsUsage: "<title>",
				Action:    summaryCommand,
			},
			{
				Name:   "titles",
				Usage:  "List catalog titles in order",
				Action: titlesCommand,
			},
			{
				Name:   "serve",
				Usage:  "Serve the JSON API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"LIBRARIAN_ADDR"},
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-request timeout",
						Value: server.DefaultRequestTimeout,
					},
				},
			},
			mathCommand(),
		},
	}
}
