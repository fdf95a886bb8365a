package export

import (
	"fmt"
	"time"

	"github.com/Zuo-Peng/ris/internal/analysis"
)

const tsLayout = "2006-01-02T15:04:05Z07:00"

// WriteReport stores one run with its scores, messages and sessions in a
// single transaction.
func (d *DB) WriteReport(rep *analysis.Report, sourcePath string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, source_path, your_name, their_name, messages, your_messages, their_messages,
		                   sessions, first_at, last_at, final, percent, level, language, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID,
		sourcePath,
		rep.YourName,
		rep.TheirName,
		rep.Messages,
		rep.YourMessages,
		rep.TheirMessages,
		rep.SessionCount,
		rep.FirstAt.Format(tsLayout),
		rep.LastAt.Format(tsLayout),
		rep.Result.Final,
		rep.Verdict.Percent,
		string(rep.Verdict.Level),
		rep.Language,
		time.Now().UTC().Format(tsLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	scoreStmt, err := tx.Prepare(
		`INSERT INTO scores (run_id, key, label, score, weight, contribution) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer scoreStmt.Close()
	for _, e := range rep.Breakdown {
		if _, err := scoreStmt.Exec(rep.RunID, e.Key, e.Label, e.Score, e.Weight, e.Contribution); err != nil {
			return fmt.Errorf("insert score %s: %w", e.Key, err)
		}
	}

	msgStmt, err := tx.Prepare(
		`INSERT INTO messages (run_id, seq, line_number, ts, sender, role, text) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer msgStmt.Close()
	for i, m := range rep.Log {
		_, err := msgStmt.Exec(rep.RunID, i, m.Line, m.Timestamp.Format(tsLayout), m.Sender, role(rep, m.Sender), m.Text)
		if err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	sessStmt, err := tx.Prepare(
		`INSERT INTO sessions (run_id, seq, opener, started_at, start_seq, end_seq, line_number) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer sessStmt.Close()
	for i, s := range rep.Sessions {
		_, err := sessStmt.Exec(rep.RunID, i, s.Opener, s.StartedAt.Format(tsLayout), s.Start, s.End, s.Line)
		if err != nil {
			return fmt.Errorf("insert session %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func role(rep *analysis.Report, sender string) string {
	switch sender {
	case rep.YourName:
		return "you"
	case rep.TheirName:
		return "them"
	default:
		return "other"
	}
}
