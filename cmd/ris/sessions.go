package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ris/internal/open"
	"github.com/Zuo-Peng/ris/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func sessionsCmd() *cobra.Command {
	var you, them string
	var show int

	cmd := &cobra.Command{
		Use:   "sessions <path>",
		Short: "List conversation sessions and who opened each",
		Long: `A session starts with the first message and after every silence longer than
session_gap_minutes. The initiation score counts who opened them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			rep, _, err := a.analyze(args[0], you, them)
			if err != nil {
				return err
			}
			p := render.Participants{You: rep.YourName, Them: rep.TheirName}

			if show == 0 {
				render.Sessions(os.Stdout, rep.Log, rep.Sessions, p)
				fmt.Fprintf(os.Stderr, "%d sessions, initiation score %.2f\n", rep.SessionCount, rep.Result.Initiation)
				return nil
			}

			if _, err := open.SessionLine(rep.Sessions, show); err != nil {
				return err
			}
			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			fmt.Print(render.Conversation(rep.Log, rep.Sessions[show-1], p, a.cfg.Lexicon.Keywords, render.Options{Color: isTTY}))
			return nil
		},
	}

	addPairFlags(cmd, &you, &them)
	cmd.Flags().IntVar(&show, "show", 0, "Print the messages of session N instead of the table")

	return cmd
}
