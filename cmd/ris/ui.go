package main

import (
	"io"

	"github.com/Zuo-Peng/ris/internal/tui"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	var you, them string

	cmd := &cobra.Command{
		Use:   "ui [path]",
		Short: "Interactive form and results screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			// keep log lines off the alt screen
			a.log.SetOutput(io.Discard)

			p := tui.Prefill{You: you, Them: them}
			if len(args) == 1 {
				p.Path = args[0]
			}
			return tui.Run(a.analyzer, a.loader, a.cfg.Lexicon.Keywords, p)
		},
	}

	addPairFlags(cmd, &you, &them)

	return cmd
}
