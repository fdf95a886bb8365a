package main

import (
	"fmt"

	"github.com/Zuo-Peng/ris/internal/open"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var you, them string
	var session int

	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open the transcript in $EDITOR at the first line of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			rep, t, err := a.analyze(args[0], you, them)
			if err != nil {
				return err
			}
			if t.Archive {
				return fmt.Errorf("%s is a zip archive; extract %s first", t.Path, t.Entry)
			}

			line, err := open.SessionLine(rep.Sessions, session)
			if err != nil {
				return err
			}
			return open.OpenAt(t.Path, line)
		},
	}

	addPairFlags(cmd, &you, &them)
	cmd.Flags().IntVar(&session, "session", 1, "Session number as listed by 'ris sessions'")

	return cmd
}
