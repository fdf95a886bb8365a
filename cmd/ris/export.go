package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ris/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var you, them, dbPath string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write analysis runs to a SQLite file for use in other tools",
		Long: `Analyze a transcript, or every transcript in a folder, and append one run per
file to a SQLite database (runs, scores, messages, sessions tables).
Files that do not contain both names are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = a.cfg.ExportPath
			}

			db, err := export.OpenDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}

			if !info.IsDir() {
				rep, t, err := a.analyze(args[0], you, them)
				if err != nil {
					return err
				}
				if err := db.WriteReport(rep, t.Path); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Exported run %s to %s\n", rep.RunID, dbPath)
				return nil
			}

			fmt.Fprintf(os.Stderr, "Scanning %s...\n", args[0])
			stats, err := export.ExportAll(db, a.analyzer, a.loader, a.log, args[0], you, them)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	addPairFlags(cmd, &you, &them)
	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default export_path from config)")

	return cmd
}
