package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"kbsearch/internal/chunker"
	"kbsearch/internal/config"
	"kbsearch/internal/embedding/gemini"
	"kbsearch/internal/ingest"
	"kbsearch/internal/persist"
	"kbsearch/internal/service"
	"kbsearch/internal/tui"
	"kbsearch/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/kbsearch/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// Assemble components
	var store *vectorstore.Store
	switch cfg.Embedder.Type {
	case "termfreq", "":
		store = vectorstore.NewTermFrequency()
	case "gemini":
		gcfg := cfg.Embedder.Gemini
		if gcfg == nil {
			gcfg = &config.GeminiConfig{APIKeyEnv: "GEMINI_API_KEY"}
		}
		client, err := gemini.NewClient(gemini.Config{
			BaseURL:   gcfg.BaseURL,
			APIKeyEnv: gcfg.APIKeyEnv,
			Model:     gcfg.Model,
			Dimension: gcfg.Dimension,
			Timeout:   time.Duration(gcfg.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("gemini embedder init failed: %v", err)
		}
		store = vectorstore.NewDense(client, chunker.NewSentenceChunker(cfg.Chunker.MaxChunkChars))
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var adapter persist.Adapter
	switch cfg.Persistence.Type {
	case "none", "":
	case "file":
		adapter = persist.NewFile(cfg.Persistence.Path)
	case "sqlite":
		db, err := persist.NewSQLite(cfg.Persistence.Path)
		if err != nil {
			log.Fatalf("open snapshot database failed: %v", err)
		}
		adapter = db
	default:
		log.Fatalf("unknown persistence type: %s", cfg.Persistence.Type)
	}
	if c, ok := adapter.(io.Closer); ok {
		defer c.Close()
	}

	svc := service.New(store, cfg.Search.TopK)

	switch {
	case len(inputs) > 0:
		entries, err := ingest.LoadFiles(inputs)
		if err != nil {
			log.Fatalf("ingest failed: %v", err)
		}
		if err := svc.IngestEntries(ctx, entries); err != nil {
			log.Fatalf("ingest failed: %v", err)
		}
		if adapter != nil {
			if err := store.Save(ctx, adapter); err != nil {
				log.Fatalf("save snapshot failed: %v", err)
			}
		}
	case adapter != nil:
		loaded, err := store.Load(ctx, adapter)
		if err != nil {
			log.Fatalf("load snapshot failed: %v", err)
		}
		if !loaded {
			usage()
		}
	default:
		usage()
	}

	m := tui.New(svc)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println("Usage: kbsearch [--config=config.yaml] knowledge1.txt [knowledge2.json ...]")
	os.Exit(1)
}
