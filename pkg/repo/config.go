package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/plumb/pkg/object"
)

// ConfigFileName is the repository-local settings file inside .git/.
const ConfigFileName = "plumb.toml"

// Config stores repository-local settings.
//
//	[user]
//	name = "Ada Lovelace"
//	email = "ada@example.com"
//
//	[log]
//	level = "debug"
type Config struct {
	User UserConfig `toml:"user"`
	Log  LogConfig  `toml:"log"`
}

// UserConfig is the identity recorded on new commits.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// LogConfig selects the CLI's log level.
type LogConfig struct {
	Level string `toml:"level"`
}

func (r *Repo) configPath() string {
	return filepath.Join(r.GitDir, ConfigFileName)
}

// ReadConfig decodes the TOML file at path. A missing file yields an empty
// config; unknown keys are rejected.
func ReadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// Role names the two identities a commit records.
type Role string

const (
	RoleAuthor    Role = "author"
	RoleCommitter Role = "committer"
)

// Identity resolves the person recorded for role at time now. The
// GIT_<ROLE>_NAME and GIT_<ROLE>_EMAIL environment variables win over the
// [user] config section. When neither yields both a name and an email, the
// placeholder identity and timestamp from object.DefaultPerson are used.
func (r *Repo) Identity(role Role, now time.Time) object.PersonInfo {
	prefix := "GIT_" + strings.ToUpper(string(role)) + "_"
	name := lookupNonEmpty(prefix+"NAME", r.Config.User.Name)
	email := lookupNonEmpty(prefix+"EMAIL", r.Config.User.Email)
	if name == "" || email == "" {
		return object.DefaultPerson()
	}
	_, offset := now.Zone()
	return object.PersonInfo{
		Name:      name,
		Email:     email,
		Timestamp: now.Unix(),
		TZOffset:  offset / 60,
	}
}

func lookupNonEmpty(env, fallback string) string {
	if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(fallback)
}
