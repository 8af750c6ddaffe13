package main

import (
	"context"
	"log"

	"persona-chat-be/internal/config"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/internal/service"
	"persona-chat-be/pkg/database"
	"persona-chat-be/pkg/embedding"

	"github.com/fatih/color"
)

type docSeed struct {
	SourceID string
	Content  string
}

type codeSeed struct {
	SourceID string
	Citation string
	Content  string
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	knowledge := service.NewKnowledgeService(uowFactory, embeddingProvider, logger.NewZapLogger(cfg.App.LogFilePath, false))

	ctx := context.Background()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	color.Cyan("Seeding knowledge base...")

	for _, doc := range documents {
		if err := knowledge.ReplaceSource(ctx, doc.SourceID); err != nil {
			log.Printf("%s failed to clear %s: %v", red("✗"), doc.SourceID, err)
			continue
		}
		n, err := knowledge.IngestDocument(ctx, doc.SourceID, doc.Content)
		if err != nil {
			log.Printf("%s failed to ingest %s: %v", red("✗"), doc.SourceID, err)
			continue
		}
		log.Printf("%s %s (%d chunks)", green("✓"), doc.SourceID, n)
	}

	for _, sample := range codeSamples {
		if err := knowledge.ReplaceSource(ctx, sample.SourceID); err != nil {
			log.Printf("%s failed to clear %s: %v", red("✗"), sample.SourceID, err)
			continue
		}
		if err := knowledge.IngestCodeSample(ctx, sample.SourceID, sample.Citation, sample.Content); err != nil {
			log.Printf("%s failed to ingest %s: %v", red("✗"), sample.SourceID, err)
			continue
		}
		log.Printf("%s %s %s", green("✓"), sample.SourceID, yellow("(code)"))
	}

	color.Cyan("Done.")
}
