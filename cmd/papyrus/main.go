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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/papyrus"
	"github.com/poiesic/papyrus/ai"
	"github.com/poiesic/papyrus/core"
)

func main() {
	// Missing .env is fine; flags and defaults cover everything.
	godotenv.Load()

	app := &cli.App{
		Name:  "papyrus",
		Usage: "Ingestion and semantic retrieval engine for academic papers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the library database directory",
				Value:   defaultString("PAPYRUS_DB", "./papyrus-data"),
			},
			&cli.StringFlag{
				Name:  "ai-host",
				Usage: "OpenAI-compatible service host URL",
				Value: defaultString("PAPYRUS_AI_HOST", "http://localhost:11434/v1"),
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: defaultString("PAPYRUS_EMBEDDING_MODEL", "embeddinggemma"),
			},
			&cli.StringFlag{
				Name:  "llm-model",
				Usage: "Extraction/summarization model name",
				Value: defaultString("PAPYRUS_LLM_MODEL", "qwen2.5:3b"),
			},
			&cli.IntFlag{
				Name:  "dimension",
				Usage: "Primary vector index dimension",
				Value: defaultInt("PAPYRUS_DIMENSION", 1536),
			},
			&cli.StringFlag{
				Name:  "blob-dir",
				Usage: "Directory for archiving acquired payloads (empty disables archiving)",
				Value: os.Getenv("PAPYRUS_BLOB_DIR"),
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a paper from a URL or local path",
				ArgsUsage: "<source>",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "tag",
						Aliases: []string{"t"},
						Usage:   "Tag to attach to the paper (repeatable)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search ingested papers",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "paper",
						Usage: "Restrict the search to one paper id",
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   10,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "List papers and their processing state",
				Action: statusCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a paper and its vectors",
				ArgsUsage: "<paper-id>",
				Action:    deleteCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openLibrary(c *cli.Context) (*papyrus.Library, error) {
	opts := []papyrus.LibraryOption{
		papyrus.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
			ai.WithLLMModel(c.String("llm-model")),
		)),
		papyrus.WithIndexDimension(c.Int("dimension")),
	}
	if dir := c.String("blob-dir"); dir != "" {
		opts = append(opts, papyrus.WithBlobDir(dir))
	}
	return papyrus.Open(c.String("db"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one source argument")
	}

	library, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer library.Close()

	pipeline, err := library.NewIngestPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	paper, err := pipeline.Process(c.Context, c.Args().First(), c.StringSlice("tag"))
	if err != nil {
		if paper != nil {
			fmt.Printf("ingestion failed: paper %d status=%s: %s\n",
				paper.Id, paper.Status, paper.ErrorMessage)
		}
		return err
	}

	fmt.Printf("ingested paper %d (%s)\n", paper.Id, paper.Title)
	fmt.Printf("  status: %s  stage: %s  chunks: %d\n",
		paper.Status, paper.Stage, paper.ChunkCount)
	for _, tag := range paper.Tags {
		fmt.Printf("  tag: %s\n", tag)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query argument")
	}

	library, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer library.Close()

	matches, err := library.Retrieve(c.Context, c.Args().First(), c.String("paper"), c.Int("top"))
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for i, m := range matches {
		fmt.Printf("%2d. [%.4f] paper %d, %s\n", i+1, m.Score,
			m.Metadata.PaperId, m.Metadata.SectionTitle)
		fmt.Printf("    %s\n", firstLine(m.Text))
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	library, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer library.Close()

	papers, err := library.PaperRepository().ListPapers(c.Context)
	if err != nil {
		return err
	}

	if len(papers) == 0 {
		fmt.Println("no papers ingested")
		return nil
	}
	for _, p := range papers {
		fmt.Printf("%d  %-10s %-20s %s\n", p.Id, p.Status, p.Stage, p.Source)
		if p.ErrorMessage != "" {
			fmt.Printf("    error: %s\n", p.ErrorMessage)
		}
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one paper-id argument")
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid paper id %q: %w", c.Args().First(), err)
	}

	library, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer library.Close()

	paper, err := library.PaperRepository().GetPaper(c.Context, core.ID(id))
	if err != nil {
		return err
	}

	if err := library.VectorManager().Delete(c.Context, paper.Namespace()); err != nil {
		return err
	}
	if err := library.PaperRepository().DeletePaper(c.Context, paper.Id); err != nil {
		return err
	}

	fmt.Printf("deleted paper %d\n", paper.Id)
	return nil
}

func setupLogger(c *cli.Context) error {
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

func defaultString(envKey, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

func defaultInt(envKey string, fallback int) int {
	if v := os.Getenv(envKey); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 160 {
		s = s[:160]
	}
	return s
}
