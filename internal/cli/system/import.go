package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/flowplanr/internal/auth"
	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/utils"
	"github.com/julianstephens/flowplanr/internal/validation"
)

// ImportCmd loads a browser storage dump: a JSON object holding the
// flowplanr_users and flowplanr_entries collections.
type ImportCmd struct {
	File   string `arg:"" help:"JSON file with flowplanr_users and flowplanr_entries." type:"existingfile"`
	DryRun bool   `help:"Report what would be imported without writing anything."`
}

type importSummary struct {
	UsersCreated   int
	UsersMatched   int
	EntriesWritten int
	EntriesSkipped int
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	path, err := utils.ExpandHome(c.File)
	if err != nil {
		return err
	}
	doc, err := storage.ReadDocument(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if !c.DryRun {
		ctx.PerformAutomaticBackup()
	}

	sum, err := importDocument(ctx.Store, doc, c.DryRun, auth.HashPassword)
	if err != nil {
		return err
	}

	verb := "Imported"
	if c.DryRun {
		verb = "Would import"
	}
	fmt.Printf("%s %d entries (%d skipped)\n", verb, sum.EntriesWritten, sum.EntriesSkipped)
	fmt.Printf("Users: %d new, %d matched by email\n", sum.UsersCreated, sum.UsersMatched)
	return nil
}

// importDocument upserts doc into store. Users are matched by email, so
// re-importing the same dump is a no-op; imported entries win over stored
// ones for the same user and date only when they were updated later.
func importDocument(store storage.Provider, doc *storage.Document, dryRun bool, hash func(string) (string, error)) (importSummary, error) {
	var sum importSummary
	userIDs := make(map[string]string, len(doc.Users))

	for _, u := range doc.Users {
		email, err := validation.NormalizeEmail(u.Email)
		if err != nil {
			logger.Warn("Skipping imported user", "id", u.ID, "error", err)
			continue
		}

		existing, err := store.GetUserByEmail(email)
		if err == nil {
			userIDs[u.ID] = existing.ID
			sum.UsersMatched++
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return sum, fmt.Errorf("failed to look up user %s: %w", email, err)
		}

		user := models.User{ID: u.ID, Email: email, Name: strings.TrimSpace(u.Name), PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now()
		}
		// browser dumps kept plaintext passwords
		if user.PasswordHash == "" && u.Password != "" {
			if user.PasswordHash, err = hash(u.Password); err != nil {
				return sum, err
			}
		}
		if user.PasswordHash == "" {
			logger.Warn("Skipping imported user without a password", "email", email)
			continue
		}

		userIDs[u.ID] = user.ID
		sum.UsersCreated++
		if !dryRun {
			if err := store.SaveUser(user); err != nil {
				return sum, fmt.Errorf("failed to save user %s: %w", email, err)
			}
		}
	}

	for _, e := range doc.Entries {
		e.TrimFields()
		userID, ok := userIDs[e.UserID]
		if !ok || validation.ValidateEntryDate(e.Date) != nil || e.IsEmpty() {
			sum.EntriesSkipped++
			continue
		}
		e.UserID = userID
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		if e.UpdatedAt.IsZero() {
			e.UpdatedAt = e.CreatedAt
		}

		current, err := store.GetEntryByDate(userID, e.Date)
		switch {
		case err == nil:
			if !e.UpdatedAt.After(current.UpdatedAt) {
				sum.EntriesSkipped++
				continue
			}
			// keep one entry per date
			e.ID = current.ID
			e.CreatedAt = current.CreatedAt
		case !errors.Is(err, storage.ErrNotFound):
			return sum, fmt.Errorf("failed to look up entry for %s: %w", e.Date, err)
		}

		sum.EntriesWritten++
		if !dryRun {
			if err := store.SaveEntry(e); err != nil {
				return sum, fmt.Errorf("failed to save entry %s: %w", e.ID, err)
			}
		}
	}

	logger.Info("Import finished", "entries", sum.EntriesWritten, "skipped", sum.EntriesSkipped, "users", sum.UsersCreated, "dry_run", dryRun)
	return sum, nil
}
