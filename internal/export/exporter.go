package export

import (
	"fmt"

	"github.com/Zuo-Peng/ris/internal/analysis"
	"github.com/Zuo-Peng/ris/internal/scan"
	"github.com/Zuo-Peng/ris/internal/source"
	"github.com/sirupsen/logrus"
)

type Stats struct {
	Scanned  int
	Exported int
	Skipped  int
	Errors   int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d exported=%d skipped=%d errors=%d",
		s.Scanned, s.Exported, s.Skipped, s.Errors)
}

// ExportAll analyzes every transcript under root for the same pair of
// names and writes one run per file. Transcripts the pair does not appear
// in are skipped; other failures are counted and logged.
func ExportAll(db *DB, a *analysis.Analyzer, loader *source.Loader, log logrus.FieldLogger, root, you, them string) (Stats, error) {
	var stats Stats

	files, err := scan.ScanDir(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	for _, fi := range files {
		flog := log.WithField("path", fi.Path)

		t, err := loader.Load(fi.Path)
		if err != nil {
			stats.Errors++
			flog.WithError(err).Warn("load transcript")
			continue
		}

		rep, err := a.Analyze(analysis.Input{YourName: you, TheirName: them, Transcript: t.Text})
		if analysis.IsValidation(err) {
			stats.Skipped++
			flog.WithError(err).Debug("skip transcript")
			continue
		}
		if err != nil {
			stats.Errors++
			flog.WithError(err).Warn("analyze transcript")
			continue
		}

		if err := db.WriteReport(rep, fi.Path); err != nil {
			stats.Errors++
			flog.WithError(err).Warn("export run")
			continue
		}
		stats.Exported++
	}

	return stats, nil
}
