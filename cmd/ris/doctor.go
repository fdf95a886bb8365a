package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Zuo-Peng/ris/internal/config"
	"github.com/Zuo-Peng/ris/internal/export"
	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, lexicon, weights and the export database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			if cfg.Path == "" {
				fmt.Println("  File: none (using defaults)")
			} else {
				fmt.Printf("  File: %s\n", cfg.Path)
			}
			fmt.Printf("  Log level: %s\n", cfg.LogLevel)
			fmt.Printf("  Timezone: %s\n", cfg.Timezone)
			fmt.Printf("  Min messages: %d\n", cfg.MinMessages)
			fmt.Printf("  Session gap: %s\n", time.Duration(cfg.SessionGapMinutes)*time.Minute)
			fmt.Printf("  Response horizon: %s\n", time.Duration(cfg.ResponseHorizonMinutes)*time.Minute)
			if err := cfg.Validate(); err != nil {
				fmt.Printf("  Status: INVALID\n%v\n", err)
			} else {
				fmt.Println("  Status: OK")
			}
			for _, w := range cfg.Warnings() {
				fmt.Printf("  WARN: %s\n", w)
			}

			fmt.Println("\n=== Lexicon ===")
			fmt.Printf("  Sentiment words: %d\n", len(cfg.Lexicon.Sentiment))
			fmt.Printf("  Keywords:        %d\n", len(cfg.Lexicon.Keywords))
			fmt.Printf("  Emoji kept:      %d\n", len(cfg.Lexicon.Emoji))
			if _, err := metric.NewEngine(cfg.Lexicon); err != nil {
				fmt.Printf("  Status: ERROR (%v)\n", err)
			} else {
				fmt.Println("  Status: OK")
			}

			fmt.Println("\n=== Weights ===")
			w := cfg.Weights
			fmt.Printf("  sentiment=%.2f keywords=%.2f initiation=%.2f questions=%.2f velocity=%.2f effort=%.2f\n",
				w.Sentiment, w.Keywords, w.Initiation, w.Questions, w.Velocity, w.Effort)
			fmt.Printf("  Sum: %.3f\n", w.Sum())

			fmt.Println("\n=== Export Database ===")
			fmt.Printf("  Path: %s\n", cfg.ExportPath)
			info, err := os.Stat(cfg.ExportPath)
			if os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'ris export' first)")
				return nil
			}

			db, err := export.OpenDB(cfg.ExportPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			runs, err := db.RunCount()
			if err != nil {
				return fmt.Errorf("count runs: %w", err)
			}
			ver, err := db.SchemaVersion()
			if err != nil {
				return fmt.Errorf("schema version: %w", err)
			}
			fmt.Printf("  Runs: %d\n", runs)
			fmt.Printf("  Schema: v%s\n", ver)
			if info != nil {
				fmt.Printf("  Size: %.1f MB\n", float64(info.Size())/1024/1024)
			}

			return nil
		},
	}
}
