package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
)

const userColumns = "id, email, name, password_hash, created_at"

func (s *Store) SaveUser(user models.User) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	_, err := s.db.Exec(`
		INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) getUserWhere(clause string, arg any) (models.User, error) {
	if s.db == nil {
		return models.User{}, storage.ErrNotLoaded
	}
	u, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE "+clause, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %v: %w", arg, storage.ErrNotFound)
	}
	return u, err
}

func (s *Store) GetUser(id string) (models.User, error) {
	return s.getUserWhere("id = $1", id)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	return s.getUserWhere("LOWER(email) = LOWER($1)", email)
}

func (s *Store) GetAllUsers() ([]models.User, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) GetSession() (models.Session, error) {
	if s.db == nil {
		return models.Session{}, storage.ErrNotLoaded
	}
	var session models.Session
	err := s.db.QueryRow("SELECT token, created_at FROM session WHERE id = 1").Scan(&session.Token, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, fmt.Errorf("session: %w", storage.ErrNotFound)
	}
	return session, err
}

func (s *Store) SaveSession(session models.Session) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	_, err := s.db.Exec(`
		INSERT INTO session (id, token, created_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token, created_at = EXCLUDED.created_at`,
		session.Token, session.CreatedAt.UTC())
	return err
}

func (s *Store) ClearSession() error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	_, err := s.db.Exec("DELETE FROM session")
	return err
}
