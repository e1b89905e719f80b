package cli

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/flowplanr/internal/auth"
	"github.com/julianstephens/flowplanr/internal/backup"
	"github.com/julianstephens/flowplanr/internal/errors"
	"github.com/julianstephens/flowplanr/internal/export"
	"github.com/julianstephens/flowplanr/internal/journal"
	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
)

type Context struct {
	Store storage.Provider
	// ConfigDir holds logs and the TUI lockfile. For file stores it is the
	// store's directory.
	ConfigDir string
	// In is read by confirmation prompts. Defaults to os.Stdin.
	In io.Reader
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !backup.Supported(c.Store.GetConfigPath()) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) Auth() *auth.Service       { return auth.NewService(c.Store) }
func (c *Context) Journal() *journal.Service { return journal.NewService(c.Store) }
func (c *Context) Export() *export.Service   { return export.NewService(c.Store) }

// CurrentUser returns the logged-in user or an error telling the user how
// to log in.
func (c *Context) CurrentUser() (models.User, error) {
	user, err := c.Auth().CurrentUser()
	switch {
	case err == nil:
		return user, nil
	case stderrors.Is(err, auth.ErrNotLoggedIn):
		return models.User{}, errors.WithHint(err, "Create an account with 'flowplanr register' or sign in with 'flowplanr login'.")
	case stderrors.Is(err, auth.ErrInvalidSession), stderrors.Is(err, auth.ErrUserNotFound):
		return models.User{}, errors.WithHint(err, "Run 'flowplanr login' to start a new session.")
	}
	return models.User{}, err
}

// Confirm asks a yes/no question on stdout and reads the answer from In.
// Anything but y or yes declines.
func (c *Context) Confirm(question string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", question)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
