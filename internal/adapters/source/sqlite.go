package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/dedupe"
	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/domain/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
  event_key TEXT PRIMARY KEY,
  id        TEXT NOT NULL DEFAULT '',
  name      TEXT NOT NULL,
  date      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS matches (
  event_key           TEXT NOT NULL REFERENCES events(event_key) ON DELETE CASCADE,
  position            INTEGER NOT NULL,
  match_order         INTEGER NOT NULL,
  participants        TEXT,
  result              TEXT NOT NULL DEFAULT '',
  method              TEXT NOT NULL DEFAULT '',
  match_type          TEXT NOT NULL DEFAULT '',
  stipulation         TEXT NOT NULL DEFAULT '',
  title               TEXT NOT NULL DEFAULT '',
  title_outcome       TEXT NOT NULL DEFAULT '',
  special_winner_type TEXT NOT NULL DEFAULT '',
  qualifiers          TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (event_key, position)
);
CREATE TABLE IF NOT EXISTS ledger_records (
  id                  INTEGER PRIMARY KEY,
  run_id              TEXT NOT NULL,
  event_id            TEXT NOT NULL,
  event_name          TEXT NOT NULL,
  event_date          TEXT NOT NULL,
  event_type          TEXT NOT NULL,
  match_order         INTEGER NOT NULL,
  match_type          TEXT NOT NULL,
  result              TEXT NOT NULL,
  method              TEXT NOT NULL,
  title               TEXT NOT NULL,
  title_outcome       TEXT NOT NULL,
  is_main_event       INTEGER NOT NULL CHECK (is_main_event IN (0,1)),
  wrestler_name       TEXT NOT NULL,
  match_points        INTEGER NOT NULL,
  title_points        INTEGER NOT NULL,
  special_points      INTEGER NOT NULL,
  main_event_points   INTEGER NOT NULL,
  battle_royal_points INTEGER NOT NULL,
  total_points        INTEGER NOT NULL,
  breakdown           TEXT NOT NULL,
  created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ledger_wrestler ON ledger_records(wrestler_name);
`

// DB is a SQLite-backed event store and ledger sink.
type DB struct {
	sql *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: schema: %w", ErrSource, err)
	}
	return &DB{sql: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Load reads every event in insertion order with its matches in card order.
func (d *DB) Load(ctx context.Context) (Season, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT event_key, id, name, date FROM events ORDER BY rowid`)
	if err != nil {
		return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	var s Season
	index := make(map[string]int)
	for rows.Next() {
		var key, id, name, raw string
		if err := rows.Scan(&key, &id, &name, &raw); err != nil {
			rows.Close()
			return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
		}
		date, ok := ParseDate(raw)
		if !ok {
			s.Warnings = append(s.Warnings, dateWarning(id, name, raw))
		}
		index[key] = len(s.Events)
		s.Events = append(s.Events, model.Event{ID: id, Name: name, Date: date})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	if err := rows.Close(); err != nil {
		return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
	}

	mrows, err := d.sql.QueryContext(ctx, `
SELECT event_key, match_order, participants, result, method, match_type, stipulation,
       title, title_outcome, special_winner_type, qualifiers
FROM matches ORDER BY event_key, position`)
	if err != nil {
		return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var (
			eventKey, outcome, qualifiers string
			participants                 sql.NullString
			m                            model.Match
		)
		if err := mrows.Scan(&eventKey, &m.Order, &participants, &m.Result, &m.Method, &m.MatchType,
			&m.Stipulation, &m.Title, &outcome, &m.SpecialWinnerType, &qualifiers); err != nil {
			return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
		}
		i, ok := index[eventKey]
		if !ok {
			continue
		}
		m.Participants = storedParticipants(participants)
		m.TitleOutcome = model.ParseTitleOutcome(outcome)
		m.Qualifiers = storedNames(qualifiers)
		s.Events[i].Matches = append(s.Events[i].Matches, m)
	}
	if err := mrows.Err(); err != nil {
		return Season{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	return s, nil
}

// storedParticipants decodes a participants column: a leading "[" marks a
// JSON array, NULL is malformed, anything else is text.
func storedParticipants(v sql.NullString) model.Participants {
	if !v.Valid {
		return model.MalformedParticipants("NULL")
	}
	if strings.HasPrefix(strings.TrimSpace(v.String), "[") {
		if !gjson.Valid(v.String) {
			return model.MalformedParticipants(v.String)
		}
		return decodeParticipants(gjson.Parse(v.String))
	}
	return model.TextParticipants(v.String)
}

// storedNames accepts a JSON array or a comma separated list.
func storedNames(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if strings.HasPrefix(v, "[") && gjson.Valid(v) {
		return decodeNames(gjson.Parse(v))
	}
	var out []string
	for _, n := range strings.Split(v, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SaveEvents upserts events and replaces their matches. Events are keyed by
// dedupe.EventKey, so events without an id are stored under their name and
// date. Matches keep their card position, which lets tied orders coexist.
func (d *DB) SaveEvents(ctx context.Context, events []model.Event) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, ev := range events {
		var date string
		if !ev.Date.IsZero() {
			date = ev.Date.Format("2006-01-02")
		}
		key := dedupe.EventKey(ev)
		if _, err = tx.ExecContext(ctx, `INSERT INTO events(event_key, id, name, date) VALUES(?,?,?,?)
ON CONFLICT(event_key) DO UPDATE SET id = excluded.id, name = excluded.name, date = excluded.date`,
			key, strings.TrimSpace(ev.ID), ev.Name, date); err != nil {
			return fmt.Errorf("%w: event %s: %w", ErrSource, key, err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM matches WHERE event_key = ?`, key); err != nil {
			return fmt.Errorf("%w: %w", ErrSource, err)
		}
		for pos, m := range ev.Matches {
			if _, err = tx.ExecContext(ctx, `INSERT INTO matches(event_key, position, match_order, participants, result,
method, match_type, stipulation, title, title_outcome, special_winner_type, qualifiers) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
				key, pos+1, m.Order, participantsValue(m.Participants), m.Result, m.Method, m.MatchType, m.Stipulation,
				m.Title, string(m.TitleOutcome), m.SpecialWinnerType, qualifiersText(m.Qualifiers)); err != nil {
				return fmt.Errorf("%w: match %s/%d: %w", ErrSource, key, pos+1, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrSource, err)
	}
	return nil
}

func qualifiersText(q []string) string {
	if len(q) == 0 {
		return ""
	}
	return jsonStrings(q)
}

// SaveLedger replaces the persisted ledger with records, tagged with runID.
func (d *DB) SaveLedger(ctx context.Context, runID string, records []model.LedgerRecord) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM ledger_records`); err != nil {
		return fmt.Errorf("%w: %w", ErrSource, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ledger_records(run_id, event_id, event_name, event_date,
event_type, match_order, match_type, result, method, title, title_outcome, is_main_event, wrestler_name,
match_points, title_points, special_points, main_event_points, battle_royal_points, total_points, breakdown)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err = stmt.ExecContext(ctx, runID, r.EventID, r.EventName, r.EventDate, string(r.EventType),
			r.MatchOrder, r.MatchType, r.Result, r.Method, r.Title, string(r.TitleOutcome), boolToInt(r.IsMainEvent),
			r.WrestlerName, r.MatchPoints, r.TitlePoints, r.SpecialPoints, r.MainEventPoints, r.BattleRoyalPoints,
			r.TotalPoints, jsonStrings(r.Breakdown)); err != nil {
			return fmt.Errorf("%w: ledger %s/%d/%s: %w", ErrSource, r.EventID, r.MatchOrder, r.WrestlerName, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrSource, err)
	}
	return nil
}

// LedgerTotals sums the persisted ledger per wrestler, highest first.
func (d *DB) LedgerTotals(ctx context.Context) (runID string, totals []model.SummaryEntry, err error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT run_id, wrestler_name, SUM(total_points) AS total
FROM ledger_records GROUP BY run_id, wrestler_name ORDER BY total DESC, wrestler_name ASC`)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer rows.Close()
	for rows.Next() {
		var e model.SummaryEntry
		if err := rows.Scan(&runID, &e.WrestlerName, &e.TotalPoints); err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrSource, err)
		}
		totals = append(totals, e)
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	return runID, totals, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
