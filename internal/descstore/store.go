package descstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"demosongs/internal/catalog"
)

// ErrEmpty is returned by Load when no batch has been saved.
var ErrEmpty = errors.New("description cache is empty")

// Store manages the description cache backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// ChannelCount is the number of cached descriptions from one channel.
type ChannelCount struct {
	ChannelID string
	Count     int
}

// Stats summarizes the cached batch.
type Stats struct {
	Path      string
	RunID     string
	FetchedAt time.Time
	Count     int
	Channels  []ChannelCount
}

// Open initializes or connects to the cache database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("description cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the cached batch with videos, preserving their order.
func (s *Store) Save(ctx context.Context, runID string, videos []catalog.Video) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM descriptions"); err != nil {
		return fmt.Errorf("clear descriptions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM batch"); err != nil {
		return fmt.Errorf("clear batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO descriptions (
            seq, video_id, channel_id, title, description, published_at, playlist_position
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, video := range videos {
		if _, err := stmt.ExecContext(ctx,
			i,
			video.ID,
			video.ChannelID,
			video.Title,
			video.Description,
			nullableTime(video.PublishedAt),
			video.Position,
		); err != nil {
			return fmt.Errorf("insert description %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO batch (id, run_id, fetched_at, video_count) VALUES (1, ?, ?, ?)",
		runID,
		time.Now().UTC().Format(time.RFC3339Nano),
		len(videos),
	); err != nil {
		return fmt.Errorf("record batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load returns the cached batch in order, or ErrEmpty when nothing is saved.
func (s *Store) Load(ctx context.Context) ([]catalog.Video, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM batch").Scan(&count); err != nil {
		return nil, fmt.Errorf("check batch: %w", err)
	}
	if count == 0 {
		return nil, ErrEmpty
	}

	rows, err := s.db.QueryContext(ctx, `SELECT video_id, channel_id, title, description, published_at, playlist_position
        FROM descriptions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query descriptions: %w", err)
	}
	defer rows.Close()

	var videos []catalog.Video
	for rows.Next() {
		var (
			video     catalog.Video
			published sql.NullString
		)
		if err := rows.Scan(&video.ID, &video.ChannelID, &video.Title, &video.Description, &published, &video.Position); err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		video.PublishedAt = parseTime(published)
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate descriptions: %w", err)
	}
	return videos, nil
}

// Stats reports what the cache currently holds. An empty cache yields zero
// values and no error.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Path: s.path}

	var fetched string
	err := s.db.QueryRowContext(ctx, "SELECT run_id, fetched_at, video_count FROM batch WHERE id = 1").
		Scan(&stats.RunID, &fetched, &stats.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return stats, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("query batch: %w", err)
	}
	stats.FetchedAt = parseTime(sql.NullString{String: fetched, Valid: true})

	rows, err := s.db.QueryContext(ctx, `SELECT channel_id, COUNT(1), MIN(seq) AS first_seq
        FROM descriptions GROUP BY channel_id ORDER BY first_seq`)
	if err != nil {
		return Stats{}, fmt.Errorf("query channel counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			entry    ChannelCount
			firstSeq int
		)
		if err := rows.Scan(&entry.ChannelID, &entry.Count, &firstSeq); err != nil {
			return Stats{}, fmt.Errorf("scan channel count: %w", err)
		}
		stats.Channels = append(stats.Channels, entry)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate channel counts: %w", err)
	}
	return stats, nil
}

// Clear removes the cached batch and returns the number of descriptions
// deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, "DELETE FROM descriptions")
	if err != nil {
		return 0, fmt.Errorf("clear descriptions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM batch"); err != nil {
		return 0, fmt.Errorf("clear batch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit clear: %w", err)
	}
	return removed, nil
}

func nullableTime(ts time.Time) any {
	if ts.IsZero() {
		return nil
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func parseTime(value sql.NullString) time.Time {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, value.String)
	if err != nil {
		return time.Time{}
	}
	return ts
}
