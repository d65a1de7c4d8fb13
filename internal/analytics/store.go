// Package analytics records privacy-conscious visitor metrics and outbound
// link clicks in sqlite.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultRetention is how long visitor rows are kept.
const DefaultRetention = 365 * 24 * time.Hour

// Visit is one tracked page request. Only a salted hash of the address is
// stored.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// LinkStat counts clicks on one project or certificate link.
type LinkStat struct {
	Kind   string `json:"kind"`
	Slug   string `json:"slug"`
	URL    string `json:"url"`
	Clicks int64  `json:"clicks"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	TotalClicks      int64      `json:"total_clicks"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TopLinks         []LinkStat `json:"top_links"`
	RecentVisitors   []Visit    `json:"recent_visitors"`
}

// Store is the sqlite-backed analytics store.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (or creates) the database at path and migrates it. An empty
// salt is replaced with a random one, so hashes are stable only for the
// life of the process.
func Open(ctx context.Context, path, salt string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// one writer; tracking runs in background goroutines
	db.SetMaxOpenConns(1)

	s, err := New(db, salt)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database.
func New(db *sql.DB, salt string) (*Store, error) {
	if salt == "" {
		var err error
		if salt, err = RandomToken(); err != nil {
			return nil, err
		}
	}
	return &Store{db: db, salt: salt, now: time.Now}, nil
}

// RandomToken returns 32 random bytes hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
		`CREATE TABLE IF NOT EXISTS clicks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			slug TEXT NOT NULL,
			url TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate analytics: %w", err)
		}
	}
	return nil
}

// HashIP returns the salted, truncated hash stored in place of ip.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// RecordVisit stores one page request.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordClick stores one outbound link click.
func (s *Store) RecordClick(ctx context.Context, kind, slug, url string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clicks (kind, slug, url, timestamp) VALUES (?, ?, ?, ?)`,
		kind, slug, url, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record click: %w", err)
	}
	return nil
}

// Stats summarises visitors and clicks.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	week := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{TopLinks: []LinkStat{}, RecentVisitors: []Visit{}}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.TotalClicks, `SELECT COUNT(*) FROM clicks`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today.Unix()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{week.Unix()}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	links, err := s.topLinks(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopLinks = links

	visits, err := s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = visits
	return stats, nil
}

func (s *Store) topLinks(ctx context.Context, limit int) ([]LinkStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, slug, url, COUNT(*) AS n
		FROM clicks
		GROUP BY kind, slug, url
		ORDER BY n DESC, kind, slug
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top links: %w", err)
	}
	defer rows.Close()

	links := []LinkStat{}
	for rows.Next() {
		var l LinkStat
		if err := rows.Scan(&l.Kind, &l.Slug, &l.URL, &l.Clicks); err != nil {
			return nil, fmt.Errorf("top links: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// RecentVisitors returns the latest visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	visits := []Visit{}
	for rows.Next() {
		var (
			v  Visit
			ts int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Cleanup deletes visitor rows older than olderThan and reports how many
// were removed. A non-positive olderThan selects DefaultRetention.
func (s *Store) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		olderThan = DefaultRetention
	}
	cutoff := s.now().Add(-olderThan).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return res.RowsAffected()
}
