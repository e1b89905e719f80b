package cli

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/flowplanr/internal/auth"
	"github.com/julianstephens/flowplanr/internal/errors"
	"github.com/julianstephens/flowplanr/internal/storage"
)

func newContext(t *testing.T) *Context {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "flowplanr.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return &Context{Store: store, ConfigDir: dir}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ctx := &Context{In: strings.NewReader(tt.input)}
			got, err := ctx.Confirm("Continue?")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCurrentUserHint(t *testing.T) {
	ctx := newContext(t)

	_, err := ctx.CurrentUser()
	if !stderrors.Is(err, auth.ErrNotLoggedIn) {
		t.Fatalf("CurrentUser() = %v, want ErrNotLoggedIn", err)
	}
	if !strings.Contains(errors.Hint(err), "flowplanr login") {
		t.Errorf("hint = %q", errors.Hint(err))
	}
}
