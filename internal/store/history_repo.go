package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lithammer/shortuuid/v4"
)

// Result is one finished drill or test, as persisted to history.
type Result struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	DeviceID  string    `json:"deviceId"`
	Type      string    `json:"type"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Mistakes  []string  `json:"mistakes"`
}

// historyRow is the raw table shape; timestamps are stored as RFC 3339
// text and mistakes as a JSON array, both decoded on read.
type historyRow struct {
	ID        string `db:"id"`
	Timestamp string `db:"timestamp"`
	DeviceID  string `db:"device_id"`
	Type      string `db:"type"`
	Score     int    `db:"score"`
	Total     int    `db:"total"`
	Mistakes  string `db:"mistakes"`
}

func (row historyRow) toResult() Result {
	res := Result{
		ID:       row.ID,
		DeviceID: row.DeviceID,
		Type:     row.Type,
		Score:    row.Score,
		Total:    row.Total,
	}
	res.Timestamp, _ = time.Parse(time.RFC3339, row.Timestamp)
	if err := json.Unmarshal([]byte(row.Mistakes), &res.Mistakes); err != nil {
		// A corrupt row should not hide the rest of the history.
		res.Mistakes = nil
	}
	return res
}

// HistoryRepo handles database operations for session history.
type HistoryRepo struct {
	db *sqlx.DB
}

// Append stores a result. A missing id or timestamp is filled in.
func (r *HistoryRepo) Append(ctx context.Context, res Result) error {
	if res.ID == "" {
		res.ID = shortuuid.New()
	}
	if res.Timestamp.IsZero() {
		res.Timestamp = time.Now().UTC()
	}
	if res.Mistakes == nil {
		res.Mistakes = []string{}
	}

	mistakes, err := json.Marshal(res.Mistakes)
	if err != nil {
		return fmt.Errorf("encode mistakes: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO history (id, timestamp, device_id, type, score, total, mistakes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Timestamp.Format(time.RFC3339), res.DeviceID, res.Type, res.Score, res.Total, string(mistakes))
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// List returns all history entries, newest first.
func (r *HistoryRepo) List(ctx context.Context) ([]Result, error) {
	var rows []historyRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM history ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	out := make([]Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toResult())
	}
	return out, nil
}

// MistakeIDs aggregates every word id ever recorded as a mistake, across
// all history entries.
func (r *HistoryRepo) MistakeIDs(ctx context.Context) (map[string]bool, error) {
	var blobs []string
	err := r.db.SelectContext(ctx, &blobs, `SELECT mistakes FROM history`)
	if err != nil {
		return nil, fmt.Errorf("mistake ids: %w", err)
	}

	ids := make(map[string]bool)
	for _, blob := range blobs {
		var list []string
		if err := json.Unmarshal([]byte(blob), &list); err != nil {
			continue
		}
		for _, id := range list {
			ids[id] = true
		}
	}
	return ids, nil
}

// Backup writes a JSON snapshot of the history into dir, named by ISO week
// (history_2026-W35.json). An existing snapshot for the current week is
// kept as-is, so the file captures the state at the week's first write.
func (r *HistoryRepo) Backup(ctx context.Context, dir string) (string, error) {
	year, week := time.Now().ISOWeek()
	path := filepath.Join(dir, fmt.Sprintf("history_%d-W%02d.json", year, week))

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	entries, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode history backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write history backup: %w", err)
	}
	return path, nil
}
