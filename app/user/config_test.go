package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, GetDefaultConfig().Validate())

	cases := map[string]func(*Config){
		"missing key":       func(c *Config) { c.SymmetricKey = "" },
		"unknown token":     func(c *Config) { c.TokenType = "opaque" },
		"zero ttl":          func(c *Config) { c.TokenTTL = 0 },
		"no cookie name":    func(c *Config) { c.CookieName = "" },
		"zero verify limit": func(c *Config) { c.VerificationMaxPerHour = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
