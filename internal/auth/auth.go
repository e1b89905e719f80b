// Package auth registers users and tracks the single logged-in session.
// Passwords are stored as bcrypt hashes; the session is a JWT signed with a
// secret kept in the OS keyring, or in settings when no keyring exists.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/flowplanr/internal/keyring"
	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/validation"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailTaken      = errors.New("a user with this email already exists")
	ErrNotLoggedIn     = errors.New("not logged in, run 'flowplanr login' first")
	ErrInvalidSession  = errors.New("session is invalid or expired, please log in again")
)

const sessionLifetime = 30 * 24 * time.Hour

// Store is the subset of storage.Provider auth needs.
type Store interface {
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
	SaveUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetSession() (models.Session, error)
	SaveSession(models.Session) error
	ClearSession() error
}

type Service struct {
	store Store
	clock func() time.Time
	newID func() string
	cost  int
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		clock: time.Now,
		newID: uuid.NewString,
		cost:  bcrypt.DefaultCost,
	}
}

// HashPassword returns the bcrypt hash stored for password.
func HashPassword(password string) (string, error) {
	return hashPassword(password, bcrypt.DefaultCost)
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a user and logs them in.
func (s *Service) Register(name, email, password string) (models.User, error) {
	email, err := validation.NormalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.User{}, err
	}

	if _, err := s.store.GetUserByEmail(email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           s.newID(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.clock(),
	}
	if err := s.store.SaveUser(user); err != nil {
		return models.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	logger.Info("User registered", "user", user.ID)

	if err := s.startSession(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks the credentials and replaces any existing session.
func (s *Service) Login(email, password string) (models.User, error) {
	user, err := s.store.GetUserByEmail(strings.TrimSpace(email))
	if errors.Is(err, storage.ErrNotFound) {
		logger.Warn("Login failed: unknown email")
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login failed: wrong password", "user", user.ID)
		return models.User{}, ErrInvalidPassword
	}

	if err := s.startSession(user); err != nil {
		return models.User{}, err
	}
	logger.Info("User logged in", "user", user.ID)
	return user, nil
}

func (s *Service) Logout() error {
	if err := s.store.ClearSession(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logger.Info("User logged out")
	return nil
}

// CurrentUser resolves the stored session to its user.
func (s *Service) CurrentUser() (models.User, error) {
	session, err := s.store.GetSession()
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to read session: %w", err)
	}

	userID, err := s.verify(session.Token)
	if err != nil {
		logger.Warn("Rejected session token", "error", err)
		return models.User{}, ErrInvalidSession
	}

	user, err := s.store.GetUser(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, ErrInvalidSession
	}
	return user, err
}

func (s *Service) startSession(user models.User) error {
	token, err := s.sign(user.ID)
	if err != nil {
		return err
	}
	if err := s.store.SaveSession(models.Session{Token: token, CreatedAt: s.clock()}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Service) sign(userID string) (string, error) {
	secret, err := s.secret()
	if err != nil {
		return "", err
	}
	now := s.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionLifetime)),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (s *Service) verify(tokenString string) (string, error) {
	secret, err := s.secret()
	if err != nil {
		return "", err
	}
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// secret returns the signing key, creating one on first use.
func (s *Service) secret() ([]byte, error) {
	stored, err := keyring.GetSessionSecret()
	if err == nil {
		return []byte(stored), nil
	}

	fresh, genErr := newSecret()
	if genErr != nil {
		return nil, genErr
	}
	if errors.Is(err, keyring.ErrNotFound) {
		if setErr := keyring.SetSessionSecret(fresh); setErr == nil {
			return []byte(fresh), nil
		}
	}

	// no usable keyring: keep the secret with the settings
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.SessionSecret == "" {
		logger.Warn("OS keyring unavailable, storing session secret in settings")
		settings.SessionSecret = fresh
		if err := s.store.SaveSettings(settings); err != nil {
			return nil, fmt.Errorf("failed to save session secret: %w", err)
		}
	}
	return []byte(settings.SessionSecret), nil
}

func newSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
