package usage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/logging"
	"github.com/studiowebux/keydeck/internal/migrations"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

// timeLayout is how fired_at is stored (local time, no zone)
const timeLayout = "2006-01-02 15:04:05"

// Entry is one recorded shortcut fire
type Entry struct {
	ID         int64
	ShortcutID string
	Keys       string
	Category   string
	Source     string
	FiredAt    time.Time
}

// Stats aggregates the fires of a single shortcut
type Stats struct {
	ShortcutID string
	Keys       string
	Count      int
	FirstFired time.Time
	LastFired  time.Time
}

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create usage directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open usage database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to usage database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Save(entry Entry) error {
	query := `
		INSERT INTO usage (shortcut_id, keys, category, source, fired_at)
		VALUES (?, ?, ?, ?, ?)
	`

	firedAt := entry.FiredAt
	if firedAt.IsZero() {
		firedAt = time.Now()
	}

	_, err := m.db.Exec(query,
		entry.ShortcutID,
		entry.Keys,
		entry.Category,
		entry.Source,
		firedAt.Local().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save usage entry: %w", err)
	}

	return nil
}

// Recent returns the newest entries first. A limit <= 0 returns everything.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, shortcut_id, keys, category, source, fired_at
		FROM usage
		ORDER BY fired_at DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var firedAt string

		if err := rows.Scan(&e.ID, &e.ShortcutID, &e.Keys, &e.Category, &e.Source, &firedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage entry: %w", err)
		}

		e.FiredAt = parseTime(firedAt)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Stats returns one row per shortcut id, most used first
func (m *Manager) Stats() ([]Stats, error) {
	query := `
		SELECT
			shortcut_id,
			MAX(keys),
			COUNT(*) as total,
			MIN(fired_at),
			MAX(fired_at)
		FROM usage
		GROUP BY shortcut_id
		ORDER BY total DESC, shortcut_id ASC
	`

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var first, last sql.NullString

		if err := rows.Scan(&s.ShortcutID, &s.Keys, &s.Count, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan usage stats: %w", err)
		}

		if first.Valid {
			s.FirstFired = parseTime(first.String)
		}
		if last.Valid {
			s.LastFired = parseTime(last.String)
		}

		statsList = append(statsList, s)
	}

	return statsList, rows.Err()
}

// Clear removes every recorded fire
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM usage"); err != nil {
		return fmt.Errorf("failed to clear usage: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func parseTime(s string) time.Time {
	// SQLite stores without timezone info
	t, err := time.ParseInLocation(timeLayout, s, time.Local)
	if err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// Track records every fire of the shortcuts currently in reg, tagged with
// source. Shortcuts registered afterwards are not tracked. The returned
// func removes all subscriptions.
func Track(reg *shortcuts.Registry, m *Manager, source string) func() {
	log := logging.Component("usage")

	var unsubs []func()
	for _, s := range reg.GetAll() {
		entry := Entry{
			ShortcutID: s.ID,
			Keys:       shortcuts.JoinCombo(s.Keys),
			Category:   string(s.Category),
			Source:     source,
		}
		unsubs = append(unsubs, reg.Subscribe(s.ID, func() {
			e := entry
			e.FiredAt = time.Now()
			if err := m.Save(e); err != nil {
				log.Warn().Err(err).Str("shortcut", e.ShortcutID).Msg("failed to record usage")
			}
		}))
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
