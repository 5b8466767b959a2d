package store

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jmoiron/sqlx"

	"github.com/jsvoboda/lexidrill/internal/vocab"
)

// WordRepo handles database operations for vocabulary words.
type WordRepo struct {
	db *sqlx.DB
}

// PoolFilter narrows the word pool for a drill.
type PoolFilter struct {
	Unit    string
	Section string
	Lang    string
}

// PoolOptions configures a pool fetch.
type PoolOptions struct {
	Filter PoolFilter

	// Shuffle randomises the pool order (each priority group separately
	// when PrioritizeMistakes is set).
	Shuffle bool

	// PrioritizeMistakes puts words with a recorded mistake in any past
	// session ahead of the rest.
	PrioritizeMistakes bool

	// Limit caps the pool size; 0 means no cap.
	Limit int
}

// FetchPool returns the ordered word pool for a session. Entries with an
// empty word or translation are dropped. The random source is injected so
// callers (and tests) control shuffling.
func (r *WordRepo) FetchPool(ctx context.Context, opts PoolOptions, rng *rand.Rand) ([]vocab.Word, error) {
	query := `SELECT * FROM words WHERE TRIM(word) != '' AND TRIM(translation) != ''`
	var args []interface{}
	if opts.Filter.Unit != "" {
		query += ` AND unit = ?`
		args = append(args, opts.Filter.Unit)
	}
	if opts.Filter.Section != "" {
		query += ` AND section = ?`
		args = append(args, opts.Filter.Section)
	}
	if opts.Filter.Lang != "" {
		query += ` AND lang = ?`
		args = append(args, opts.Filter.Lang)
	}
	query += ` ORDER BY unit, section, id`

	var words []vocab.Word
	if err := r.db.SelectContext(ctx, &words, query, args...); err != nil {
		return nil, fmt.Errorf("fetch pool: %w", err)
	}

	if opts.PrioritizeMistakes {
		mistakes, err := (&HistoryRepo{db: r.db}).MistakeIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch mistake ids: %w", err)
		}

		var missed, rest []vocab.Word
		for _, w := range words {
			if mistakes[w.ID] {
				missed = append(missed, w)
			} else {
				rest = append(rest, w)
			}
		}
		if opts.Shuffle {
			shuffleWords(missed, rng)
			shuffleWords(rest, rng)
		}
		words = append(missed, rest...)
	} else if opts.Shuffle {
		shuffleWords(words, rng)
	}

	if opts.Limit > 0 && len(words) > opts.Limit {
		words = words[:opts.Limit]
	}
	return words, nil
}

// All returns every stored word in unit/section order.
func (r *WordRepo) All(ctx context.Context) ([]vocab.Word, error) {
	var words []vocab.Word
	err := r.db.SelectContext(ctx, &words, `SELECT * FROM words ORDER BY unit, section, id`)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// Upsert writes words, replacing existing rows with the same id.
// Returns the number of inserted and replaced rows.
func (r *WordRepo) Upsert(ctx context.Context, words []vocab.Word) (created, updated int, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, w := range words {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) > 0 FROM words WHERE id = ?`, w.ID); err != nil {
			return 0, 0, fmt.Errorf("check word %s: %w", w.ID, err)
		}

		_, err := tx.NamedExecContext(ctx, `
			INSERT OR REPLACE INTO words
				(id, word, translation, pos, pronunciation, example, unit, section, lang)
			VALUES
				(:id, :word, :translation, :pos, :pronunciation, :example, :unit, :section, :lang)`, w)
		if err != nil {
			return 0, 0, fmt.Errorf("upsert word %s: %w", w.ID, err)
		}
		if exists {
			updated++
		} else {
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit import: %w", err)
	}
	return created, updated, nil
}

// UnitSections is one unit with its sections, for the browse UI.
type UnitSections struct {
	Unit     string   `json:"unit"`
	Sections []string `json:"sections"`
}

// Structure returns the distinct units and their sections.
func (r *WordRepo) Structure(ctx context.Context, lang string) ([]UnitSections, error) {
	query := `SELECT DISTINCT unit, section FROM words`
	var args []interface{}
	if lang != "" {
		query += ` WHERE lang = ?`
		args = append(args, lang)
	}
	query += ` ORDER BY unit, section`

	var rows []struct {
		Unit    string `db:"unit"`
		Section string `db:"section"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("structure: %w", err)
	}

	var out []UnitSections
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].Unit != row.Unit {
			out = append(out, UnitSections{Unit: row.Unit})
		}
		if row.Section != "" {
			last := &out[len(out)-1]
			last.Sections = append(last.Sections, row.Section)
		}
	}
	return out, nil
}

// Languages returns the distinct language codes present in the word table.
func (r *WordRepo) Languages(ctx context.Context) ([]string, error) {
	var langs []string
	err := r.db.SelectContext(ctx, &langs, `SELECT DISTINCT lang FROM words ORDER BY lang`)
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}
	return langs, nil
}

// Count returns the number of stored words.
func (r *WordRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

func shuffleWords(words []vocab.Word, rng *rand.Rand) {
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
