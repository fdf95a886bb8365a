package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/Zuo-Peng/ris/internal/config"
	"github.com/Zuo-Peng/ris/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is what every analyzing command needs.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	analyzer *analysis.Analyzer
	loader   *source.Loader
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log := newLogger(cfg.Level())
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	opts, err := cfg.AnalysisOptions()
	if err != nil {
		return nil, err
	}
	a, err := analysis.New(opts)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, analyzer: a, loader: source.NewLoader(log)}, nil
}

func newLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

// analyze loads path and scores the pair.
func (a *app) analyze(path, you, them string) (*analysis.Report, *source.Transcript, error) {
	t, err := a.loader.Load(path)
	if err != nil {
		return nil, nil, err
	}
	rep, err := a.analyzer.Analyze(analysis.Input{YourName: you, TheirName: them, Transcript: t.Text})
	if err != nil {
		return nil, t, err
	}
	a.log.WithFields(logrus.Fields{
		"run_id":  rep.RunID,
		"path":    t.Path,
		"archive": t.Archive,
	}).Debug("analysis complete")
	return rep, t, nil
}

func addPairFlags(cmd *cobra.Command, you, them *string) {
	cmd.Flags().StringVar(you, "you", "", "Your name exactly as it appears in the chat")
	cmd.Flags().StringVar(them, "them", "", "Their name exactly as it appears in the chat")
}
