package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/errors"
	"github.com/julianstephens/flowplanr/internal/keyring"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/storage/postgres"
	"github.com/julianstephens/flowplanr/internal/storage/sqlite"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// KeyringConfig as a --config value reads the connection string from the OS keyring.
const KeyringConfig = "keyring"

var lookupEnv = os.LookupEnv

// ResolveConfig turns a --config value into a store location. Connection
// strings from the keyring or FLOWPLANR_DB_CONNECTION may carry a password;
// ones typed on the command line may not. The environment variable only
// applies while --config is left at its default.
func ResolveConfig(config string) (string, error) {
	if config == KeyringConfig {
		connStr, err := keyring.GetConnectionString()
		if stderrors.Is(err, keyring.ErrNotFound) {
			return "", errors.WithHint(err, "Store one with 'flowplanr keyring set <connection-string>'.")
		}
		return connStr, err
	}
	if connStr, ok := lookupEnv(constants.EnvDBConnection); ok && connStr != "" && config == constants.DefaultConfigPath {
		return connStr, nil
	}

	if postgres.IsConnString(config) {
		if valid, err := postgres.ValidateConnString(config); !valid {
			if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", errors.WithHint(err, fmt.Sprintf(
					"Use 'flowplanr keyring set' with '--config %s', export %s, or a ~/.pgpass file.",
					KeyringConfig, constants.EnvDBConnection))
			}
			return "", err
		}
		return config, nil
	}

	return utils.ExpandHome(config)
}

// OpenStore returns the backend for a resolved store location: PostgreSQL
// for connection strings, the JSON file store for *.json, SQLite otherwise.
func OpenStore(location string) storage.Provider {
	switch {
	case postgres.IsConnString(location):
		return postgres.New(location)
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return storage.NewJSONStore(location)
	default:
		return sqlite.NewStore(location)
	}
}

// ConfigDir is where logs and the TUI lockfile live for a store location.
func ConfigDir(location string) (string, error) {
	if postgres.IsConnString(location) {
		return utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	}
	return filepath.Dir(location), nil
}
