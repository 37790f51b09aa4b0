package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadCredentials reads the mail identity and app password from the
// environment, loading envFiles first if they exist. Variables already set
// in the process environment win over the files.
func (c *Config) LoadCredentials(envFiles ...string) error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Debug().Str("file", f).Msg("env file not found; using process environment")
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	c.Credentials = Credentials{
		User:     strings.TrimSpace(os.Getenv(EnvMailUser)),
		Password: strings.TrimSpace(os.Getenv(EnvMailPassword)),
	}
	return c.Credentials.Validate()
}

func (cr Credentials) Validate() error {
	var missing []string
	if cr.User == "" {
		missing = append(missing, EnvMailUser)
	}
	if cr.Password == "" {
		missing = append(missing, EnvMailPassword)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
