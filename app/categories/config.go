package categories

import "errors"

// Config controls the shape of the category tree.
type Config struct {
	// MaxDepth is the number of levels a tree may have; 0 disables the limit.
	MaxDepth int `env:"CATEGORY_MAX_DEPTH" env-default:"2"`
}

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New("category max depth must not be negative")
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{MaxDepth: 2}
}
