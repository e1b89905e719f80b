package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
)

const entryColumns = `id, user_id, date, priority_a, daily_tasks, completed, postponed,
	waiting_for, difficulties, blockers, insights, tomorrow_focus, notes, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (models.JournalEntry, error) {
	var e models.JournalEntry
	var text [10]sql.NullString

	dest := []any{&e.ID, &e.UserID, &e.Date}
	for i := range text {
		dest = append(dest, &text[i])
	}
	dest = append(dest, &e.CreatedAt, &e.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return models.JournalEntry{}, err
	}

	for i, f := range models.EntryFields {
		*e.Field(f.Key) = text[i].String
	}
	return e, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]models.JournalEntry, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetEntries(userID string) ([]models.JournalEntry, error) {
	return s.queryEntries("SELECT "+entryColumns+" FROM entries WHERE user_id = $1", userID)
}

func (s *Store) GetAllEntries() ([]models.JournalEntry, error) {
	return s.queryEntries("SELECT " + entryColumns + " FROM entries")
}

func (s *Store) getEntry(query string, args ...any) (models.JournalEntry, error) {
	if s.db == nil {
		return models.JournalEntry{}, storage.ErrNotLoaded
	}
	e, err := scanEntry(s.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, fmt.Errorf("entry: %w", storage.ErrNotFound)
	}
	return e, err
}

func (s *Store) GetEntry(id string) (models.JournalEntry, error) {
	return s.getEntry("SELECT "+entryColumns+" FROM entries WHERE id = $1", id)
}

func (s *Store) GetEntryByDate(userID, date string) (models.JournalEntry, error) {
	return s.getEntry("SELECT "+entryColumns+` FROM entries
		WHERE user_id = $1 AND date = $2 ORDER BY created_at LIMIT 1`, userID, date)
}

func (s *Store) SaveEntry(e models.JournalEntry) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	args := []any{e.ID, e.UserID, e.Date}
	for _, v := range e.TextValues() {
		args = append(args, sql.NullString{String: v, Valid: v != ""})
	}
	args = append(args, e.CreatedAt.UTC(), e.UpdatedAt.UTC())

	_, err := s.db.Exec(`
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			date = EXCLUDED.date,
			priority_a = EXCLUDED.priority_a,
			daily_tasks = EXCLUDED.daily_tasks,
			completed = EXCLUDED.completed,
			postponed = EXCLUDED.postponed,
			waiting_for = EXCLUDED.waiting_for,
			difficulties = EXCLUDED.difficulties,
			blockers = EXCLUDED.blockers,
			insights = EXCLUDED.insights,
			tomorrow_focus = EXCLUDED.tomorrow_focus,
			notes = EXCLUDED.notes,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`, args...)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteEntry(id string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	res, err := s.db.Exec("DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
