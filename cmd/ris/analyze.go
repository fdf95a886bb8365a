package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ris/internal/export"
	"github.com/Zuo-Peng/ris/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func analyzeCmd() *cobra.Command {
	var you, them, format, dbPath string
	var doExport bool
	var width int

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Score an exported chat (.txt, .zip or a folder holding them)",
		Long: `Parse an exported two-person chat and score how interested "them" seems in "you".

Output is a text report on a terminal and JSON otherwise, so it pipes into jq:
  ris analyze chat.zip --you Alex --them Sam | jq .verdict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			rep, t, err := a.analyze(args[0], you, them)
			if err != nil {
				return err
			}

			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			if format == "" {
				format = render.FormatJSON
				if isTTY {
					format = render.FormatText
				}
			}
			if width == 0 && isTTY {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			if err := render.Report(os.Stdout, rep, render.Options{Format: format, Width: width, Color: isTTY}); err != nil {
				return err
			}

			if doExport || dbPath != "" {
				if dbPath == "" {
					dbPath = a.cfg.ExportPath
				}
				db, err := export.OpenDB(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.WriteReport(rep, t.Path); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Exported run %s to %s\n", rep.RunID, dbPath)
			}
			return nil
		},
	}

	addPairFlags(cmd, &you, &them)
	cmd.Flags().StringVar(&format, "format", "", "Output format: text, json or yaml (default text on a terminal, json otherwise)")
	cmd.Flags().BoolVar(&doExport, "export", false, "Also write the run to the export database")
	cmd.Flags().StringVar(&dbPath, "db", "", "Export database path (implies --export)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap text output at this many columns (0 = terminal width)")

	return cmd
}
