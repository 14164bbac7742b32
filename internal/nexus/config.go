package nexus

import (
	"context"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigError represents configuration loading errors
type ConfigError struct {
	Code    string
	Message string
	Field   string
	Cause   error
}

func (e ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e ConfigError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeInvalidType   = "CONFIG_INVALID_TYPE"
	ErrCodeFileNotFound  = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation    = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment   = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge         = "CONFIG_MERGE_FAILED"
	ErrCodeSecurityCheck = "CONFIG_SECURITY_CHECK_FAILED"
	ErrCodeTimeout       = "CONFIG_TIMEOUT"
)

// Validator handles configuration validation
type Validator interface {
	Validate(ctx context.Context, cfg interface{}) error
}

// SecurityChecker performs security validation on configuration
type SecurityChecker interface {
	CheckSecurity(ctx context.Context, cfg interface{}) error
}

// LoaderOptions contains configuration for the loader
type LoaderOptions struct {
	DefaultFileName string
	FileFlag        string
	FileName        string
	OnlyEnvironment bool
	Validator       Validator
	SecurityChecker SecurityChecker
	Timeout         time.Duration
}

// Loader reads env and an optional file into a config struct
type Loader struct {
	options LoaderOptions
}

// LoaderOption is a functional option for configuring the loader
type LoaderOption func(*LoaderOptions)

// WithDefaultFileName sets the file read when no flag is given
func WithDefaultFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.DefaultFileName = fileName
	}
}

// WithFileFlag sets the command line flag naming the config file
func WithFileFlag(flag string) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileFlag = flag
		o.FileName = ""
	}
}

// WithFileName sets a specific configuration file name
func WithFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileName = fileName
		o.FileFlag = ""
	}
}

// WithOnlyEnvironment configures loader to only read from environment
func WithOnlyEnvironment() LoaderOption {
	return func(o *LoaderOptions) {
		o.OnlyEnvironment = true
		o.FileFlag = ""
		o.FileName = ""
	}
}

// WithValidator sets a custom validator
func WithValidator(v Validator) LoaderOption {
	return func(o *LoaderOptions) {
		o.Validator = v
	}
}

// WithSecurityChecker sets a custom security checker
func WithSecurityChecker(sc SecurityChecker) LoaderOption {
	return func(o *LoaderOptions) {
		o.SecurityChecker = sc
	}
}

// WithTimeout sets the timeout for loading operations
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		o.Timeout = timeout
	}
}

// NewLoader creates a new configuration loader with options
func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		DefaultFileName: ".env",
		FileFlag:        "config",
		Validator:       &DefaultValidator{},
		SecurityChecker: NoopSecurityChecker{},
		Timeout:         10 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Loader{options: options}
}

// Load loads configuration into cfg, which must be a pointer to a struct
func (l *Loader) Load(cfg interface{}) error {
	return l.LoadWithContext(context.Background(), cfg)
}

// LoadWithContext loads configuration with context support
func (l *Loader) LoadWithContext(ctx context.Context, cfg interface{}) error {
	if l.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.options.Timeout)
		defer cancel()
	}

	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return &ConfigError{
			Code:    ErrCodeInvalidType,
			Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg),
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return &ConfigError{Code: ErrCodeEnvironment, Message: "failed to read environment variables", Cause: err}
	}

	if !l.options.OnlyEnvironment {
		if fileName := l.resolveFileName(); fileName != "" {
			if err := l.loadFromFile(cfg, fileName); err != nil {
				return err
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return &ConfigError{Code: ErrCodeTimeout, Message: "configuration loading timed out", Cause: err}
	}

	if err := l.options.SecurityChecker.CheckSecurity(ctx, cfg); err != nil {
		return &ConfigError{Code: ErrCodeSecurityCheck, Message: "security validation failed", Cause: err}
	}

	if err := l.options.Validator.Validate(ctx, cfg); err != nil {
		return &ConfigError{Code: ErrCodeValidation, Message: "configuration validation failed", Cause: err}
	}

	return nil
}

// loadFromFile merges values from fileName over the environment values
func (l *Loader) loadFromFile(cfg interface{}, fileName string) error {
	fileCfg := reflect.New(reflect.ValueOf(cfg).Elem().Type()).Interface()

	if err := cleanenv.ReadConfig(fileName, fileCfg); err != nil {
		return &ConfigError{
			Code:    ErrCodeFileNotFound,
			Message: fmt.Sprintf("failed to read configuration file: %s", fileName),
			Cause:   err,
		}
	}

	if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
		return &ConfigError{Code: ErrCodeMerge, Message: "failed to merge configuration sources", Cause: err}
	}
	return nil
}

func (l *Loader) resolveFileName() string {
	if l.options.FileName != "" {
		return l.options.FileName
	}
	if l.options.FileFlag == "" {
		return ""
	}

	fileName := ""
	if f := flag.Lookup(l.options.FileFlag); f != nil {
		fileName = f.Value.String()
	}
	if fileName != "" {
		return fileName
	}

	if l.options.DefaultFileName == "" {
		return ""
	}
	if _, err := os.Stat(l.options.DefaultFileName); err == nil {
		return l.options.DefaultFileName
	}
	return ""
}

// DefaultValidator validates `validate` struct tags with go-playground/validator
type DefaultValidator struct {
	validator *validator.Validate
}

func (v *DefaultValidator) Validate(_ context.Context, cfg interface{}) error {
	if v.validator == nil {
		v.validator = validator.New()
	}
	return v.validator.Struct(cfg)
}

// NoopSecurityChecker accepts every configuration
type NoopSecurityChecker struct{}

func (NoopSecurityChecker) CheckSecurity(context.Context, interface{}) error { return nil }

// WeakSecretChecker rejects well-known placeholder values in fields whose
// name suggests a secret. Nested structs are inspected too.
type WeakSecretChecker struct {
	Patterns []string
}

// NewWeakSecretChecker returns a checker with the default placeholder list
func NewWeakSecretChecker() *WeakSecretChecker {
	return &WeakSecretChecker{Patterns: []string{"changeme", "123456", "password", "secret"}}
}

func (sc *WeakSecretChecker) CheckSecurity(_ context.Context, cfg interface{}) error {
	return sc.walk(reflect.ValueOf(cfg).Elem(), "")
}

func (sc *WeakSecretChecker) walk(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		ft := typ.Field(i)
		if !ft.IsExported() {
			continue
		}
		name := prefix + ft.Name

		switch {
		case field.Kind() == reflect.Struct:
			if err := sc.walk(field, name+"."); err != nil {
				return err
			}
		case field.Kind() == reflect.Ptr && field.Elem().Kind() == reflect.Struct:
			if err := sc.walk(field.Elem(), name+"."); err != nil {
				return err
			}
		case field.Kind() == reflect.String && isSensitiveField(ft.Name):
			if sc.isWeak(field.String()) {
				return &ConfigError{
					Code:    ErrCodeSecurityCheck,
					Message: "sensitive field contains a placeholder value",
					Field:   name,
				}
			}
		}
	}
	return nil
}

func isSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	for _, s := range []string{"password", "secret", "key", "token"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func (sc *WeakSecretChecker) isWeak(value string) bool {
	lower := strings.ToLower(value)
	for _, p := range sc.Patterns {
		if lower == p || strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
