package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// .env is optional
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "ris",
		Short:         "Romantic Interest Score - read interest signals from an exported WhatsApp chat",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(sessionsCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var verr *analysis.ValidationError
		if errors.As(err, &verr) && len(verr.Senders) > 0 {
			fmt.Fprintf(os.Stderr, "Senders in this chat: %s\n", strings.Join(verr.Senders, ", "))
		}
		os.Exit(1)
	}
}
