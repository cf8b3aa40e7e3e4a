// Package envconfig reads process settings from the environment, after
// loading any .env files.
package envconfig

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Settings configure a loader process. Module bindings are not settings:
// they live in the module configuration that ModuleConfig points at.
type Settings struct {
	LogLevel string `env:"LOADER_LOG_LEVEL" envDefault:"info"`

	// ModuleConfig is a file name under ConfigDir/config, or literal JSON.
	ModuleConfig string `env:"LOADER_MODULE_CONFIG" envDefault:"loader.json"`
	ConfigDir    string `env:"LOADER_CONFIG_DIR" envDefault:"."`

	AdminAddr  string        `env:"LOADER_ADMIN_ADDR" envDefault:"localhost:9091"`
	StatsLatch time.Duration `env:"LOADER_STATS_LATCH" envDefault:"15s"`
}

// Load reads the given .env files (".env" if none) into the environment,
// without overriding variables already set, then parses Settings from it.
// Missing .env files are not an error.
func Load(envFiles ...string) (*Settings, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "loading %v", f)
		}
	}
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	return &s, nil
}

// Asset reads a file relative to ConfigDir.
func (s *Settings) Asset(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.ConfigDir, name))
}
