package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dd0wney/userbase-seed/pkg/logging"
	"github.com/dd0wney/userbase-seed/pkg/validation"
)

// MaxFollowsLimit bounds max_follows; larger values only slow the run.
const MaxFollowsLimit = 1000

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("Config").
		Required("source", c.Source).
		Required("out_dir", c.OutDir).
		Required("users_file", c.UsersFile).
		Required("relationships_file", c.RelationshipsFile).
		Required("email_domain", c.EmailDomain).
		RangeInt("max_follows", c.MaxFollows, 0, MaxFollowsLimit).
		OneOf("id_scheme", c.IDScheme, []string{IDSchemeSequential, IDSchemeUUID}).
		OneOf("hash", c.Hash, []string{HashMD5, HashBcrypt}).
		OneOf("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "warning", "error"})

	cv.When(c.BcryptCost != 0, func(v *validation.ConfigValidator) {
		v.RangeInt("bcrypt_cost", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	})

	cv.Custom("artifacts", func() error {
		if c.UsersPath() == c.RelationshipsPath() {
			return fmt.Errorf("users and relationships files must differ")
		}
		return nil
	})

	cv.When(c.PublishEnabled(), func(v *validation.ConfigValidator) {
		v.Custom("s3", func() error {
			if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
				return fmt.Errorf("access_key and secret_key must be set together")
			}
			return nil
		})
	})

	return cv.Validate()
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
