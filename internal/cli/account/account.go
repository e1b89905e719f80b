package account

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/flowplanr/internal/auth"
	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/errors"
	"github.com/julianstephens/flowplanr/internal/validation"
)

// promptPassword asks for a password without echo. With confirm set the
// password must be typed twice.
var promptPassword = func(confirm bool) (string, error) {
	var password, repeat string
	fields := []huh.Field{
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(validation.ValidatePassword),
	}
	if confirm {
		fields = append(fields, huh.NewInput().
			Title("Repeat password").
			EchoMode(huh.EchoModePassword).
			Value(&repeat).
			Validate(func(s string) error {
				if s != password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return "", err
	}
	return password, nil
}

type RegisterCmd struct {
	Email    string `arg:"" help:"Email address to sign in with."`
	Name     string `help:"Display name."`
	Password string `help:"Password (prompted when omitted)." env:"FLOWPLANR_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = promptPassword(true); err != nil {
			return err
		}
	}

	user, err := ctx.Auth().Register(c.Name, c.Email, password)
	if stderrors.Is(err, auth.ErrEmailTaken) {
		return errors.WithHint(err, "Sign in with 'flowplanr login "+c.Email+"'.")
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Account created. Logged in as %s\n", user.Email)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Email address of the account."`
	Password string `help:"Password (prompted when omitted)." env:"FLOWPLANR_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		var err error
		if password, err = promptPassword(false); err != nil {
			return err
		}
	}

	user, err := ctx.Auth().Login(c.Email, password)
	if stderrors.Is(err, auth.ErrUserNotFound) {
		return errors.WithHint(err, "Create an account with 'flowplanr register "+c.Email+"'.")
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Logged in as %s\n", displayName(user.Name, user.Email))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Auth().Logout(); err != nil {
		return err
	}
	fmt.Println("✓ Logged out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetEntries(user.ID)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	fmt.Println(displayName(user.Name, user.Email))
	fmt.Printf("  Email:        %s\n", user.Email)
	fmt.Printf("  Member since: %s (%s)\n", user.CreatedAt.Format("2006-01-02"), humanize.Time(user.CreatedAt))
	fmt.Printf("  Entries:      %s\n", humanize.Comma(int64(len(entries))))
	return nil
}

func displayName(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
