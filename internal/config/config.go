// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for ktbridge.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the ktbridge configuration.
type Config struct {
	// Output is the output file path for the generated OpenAPI document
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// OpenAPI contains document-level metadata
	OpenAPI OpenAPIConfig `mapstructure:"openapi" yaml:"openapi" json:"openapi"`

	// Source contains source scanning configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Generation contains generation behavior configuration
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation" json:"generation"`

	// Parser bounds the source parser
	Parser ParserConfig `mapstructure:"parser" yaml:"parser" json:"parser"`

	// Schema controls standalone JSON Schema documents
	Schema SchemaConfig `mapstructure:"schema" yaml:"schema" json:"schema"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// OpenAPIConfig contains OpenAPI document configuration.
type OpenAPIConfig struct {
	// Version is the OpenAPI version to generate (3.0.3, 3.1.0)
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	// Info contains API metadata
	Info InfoConfig `mapstructure:"info" yaml:"info" json:"info"`

	// Servers is a list of server configurations
	Servers []ServerConfig `mapstructure:"servers" yaml:"servers" json:"servers"`

	// Tags is a list of tag configurations
	Tags []TagConfig `mapstructure:"tags" yaml:"tags" json:"tags"`
}

// InfoConfig contains API metadata.
type InfoConfig struct {
	Title          string        `mapstructure:"title" yaml:"title" json:"title"`
	Description    string        `mapstructure:"description" yaml:"description" json:"description"`
	Version        string        `mapstructure:"version" yaml:"version" json:"version"`
	TermsOfService string        `mapstructure:"termsOfService" yaml:"termsOfService" json:"termsOfService"`
	Contact        ContactConfig `mapstructure:"contact" yaml:"contact" json:"contact"`
	License        LicenseConfig `mapstructure:"license" yaml:"license" json:"license"`
}

// ContactConfig contains contact information.
type ContactConfig struct {
	Name  string `mapstructure:"name" yaml:"name" json:"name"`
	URL   string `mapstructure:"url" yaml:"url" json:"url"`
	Email string `mapstructure:"email" yaml:"email" json:"email"`
}

// LicenseConfig contains license information.
type LicenseConfig struct {
	Name string `mapstructure:"name" yaml:"name" json:"name"`
	URL  string `mapstructure:"url" yaml:"url" json:"url"`
}

// ServerConfig contains server configuration.
type ServerConfig struct {
	URL         string `mapstructure:"url" yaml:"url" json:"url"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// TagConfig contains tag configuration.
type TagConfig struct {
	Name        string `mapstructure:"name" yaml:"name" json:"name"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// SourceConfig contains source scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// GenerationConfig contains generation behavior configuration.
type GenerationConfig struct {
	// Mode is the generation mode (full, routes-only, schemas-only)
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`

	// Merge keeps hand-written parts of an existing output document
	Merge bool `mapstructure:"merge" yaml:"merge" json:"merge"`

	// StrictMode fails the run on the first file that does not parse
	// instead of skipping it
	StrictMode bool `mapstructure:"strictMode" yaml:"strictMode" json:"strictMode"`

	// DefaultResponses is the list of response codes given to undocumented
	// operations
	DefaultResponses []string `mapstructure:"defaultResponses" yaml:"defaultResponses" json:"defaultResponses"`

	// SchemasDir, when set, receives one JSON Schema file per record
	SchemasDir string `mapstructure:"schemasDir" yaml:"schemasDir" json:"schemasDir"`
}

// ParserConfig bounds the source parser.
type ParserConfig struct {
	// MaxDepth is the deepest nesting accepted by the lexer and parser
	MaxDepth int `mapstructure:"maxDepth" yaml:"maxDepth" json:"maxDepth"`
}

// SchemaConfig controls standalone JSON Schema documents.
type SchemaConfig struct {
	// IDBase prefixes the $id of each document
	IDBase string `mapstructure:"idBase" yaml:"idBase" json:"idBase"`

	// Dialect is written into $schema
	Dialect string `mapstructure:"dialect" yaml:"dialect" json:"dialect"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"ktbridge.yaml",
	"ktbridge.json",
	".ktbridge.yaml",
	".ktbridge.json",
}

var supportedFormats = []string{
	"yaml",
	"json",
}

var supportedModes = []string{
	"full",
	"routes-only",
	"schemas-only",
}

var supportedVersions = []string{
	"3.0.3",
	"3.1.0",
}

var defaultInclude = []string{"**/*.kt", "**/*.kts"}

var defaultExclude = []string{
	"**/build/**",
	"**/.gradle/**",
	"**/.idea/**",
	".git/**",
	"**/out/**",
	"**/src/test/**",
	"**/*Test.kt",
}

const (
	defaultMaxDepth = 256
	defaultIDBase   = "https://example.com/"
	defaultDialect  = "https://json-schema.org/draft/2020-12/schema"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: "openapi.yaml",
		Format: "yaml",
		OpenAPI: OpenAPIConfig{
			Version: "3.0.3",
			Info: InfoConfig{
				Title:   "API",
				Version: "1.0.0",
			},
		},
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: slices.Clone(defaultInclude),
			Exclude: slices.Clone(defaultExclude),
		},
		Generation: GenerationConfig{
			Mode:             "full",
			DefaultResponses: []string{"200", "400", "500"},
		},
		Parser: ParserConfig{
			MaxDepth: defaultMaxDepth,
		},
		Schema: SchemaConfig{
			IDBase:  defaultIDBase,
			Dialect: defaultDialect,
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches the working directory for, in order:
// ktbridge.yaml, ktbridge.json, .ktbridge.yaml, .ktbridge.json.
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = ConfigFilePath()
		if configPath == "" {
			return Default(), nil
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults mirrors Default for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("openapi.version", d.OpenAPI.Version)
	v.SetDefault("openapi.info.title", d.OpenAPI.Info.Title)
	v.SetDefault("openapi.info.version", d.OpenAPI.Info.Version)
	v.SetDefault("source.paths", d.Source.Paths)
	v.SetDefault("source.include", d.Source.Include)
	v.SetDefault("source.exclude", d.Source.Exclude)
	v.SetDefault("generation.mode", d.Generation.Mode)
	v.SetDefault("generation.merge", false)
	v.SetDefault("generation.strictMode", false)
	v.SetDefault("generation.defaultResponses", d.Generation.DefaultResponses)
	v.SetDefault("parser.maxDepth", d.Parser.MaxDepth)
	v.SetDefault("schema.idBase", d.Schema.IDBase)
	v.SetDefault("schema.dialect", d.Schema.Dialect)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !slices.Contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Generation.Mode != "" && !slices.Contains(supportedModes, c.Generation.Mode) {
		errs = append(errs, ValidationError{
			Field:   "generation.mode",
			Message: fmt.Sprintf("unsupported mode %q, must be one of: %s", c.Generation.Mode, strings.Join(supportedModes, ", ")),
		})
	}

	if c.OpenAPI.Version != "" && !slices.Contains(supportedVersions, c.OpenAPI.Version) {
		errs = append(errs, ValidationError{
			Field:   "openapi.version",
			Message: fmt.Sprintf("unsupported OpenAPI version %q, must be 3.0.3 or 3.1.0", c.OpenAPI.Version),
		})
	}

	for _, code := range c.Generation.DefaultResponses {
		if !validStatus(code) {
			errs = append(errs, ValidationError{
				Field:   "generation.defaultResponses",
				Message: fmt.Sprintf("invalid status code %q", code),
			})
		}
	}

	if c.Parser.MaxDepth < 0 {
		errs = append(errs, ValidationError{
			Field:   "parser.maxDepth",
			Message: "maxDepth must be non-negative",
		})
	}

	if c.Schema.IDBase != "" && !strings.Contains(c.Schema.IDBase, "://") {
		errs = append(errs, ValidationError{
			Field:   "schema.idBase",
			Message: fmt.Sprintf("idBase %q must be an absolute URI", c.Schema.IDBase),
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if c.OpenAPI.Info.Title == "" {
		errs = append(errs, ValidationError{
			Field:   "openapi.info.title",
			Message: "title is required",
		})
	}

	if c.OpenAPI.Info.Version == "" {
		errs = append(errs, ValidationError{
			Field:   "openapi.info.version",
			Message: "version is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validStatus accepts three-digit codes, "NXX" ranges and "default".
func validStatus(code string) bool {
	if code == "default" {
		return true
	}
	if len(code) != 3 || code[0] < '1' || code[0] > '5' {
		return false
	}
	rest := code[1:]
	if rest == "XX" {
		return true
	}
	return rest[0] >= '0' && rest[0] <= '9' && rest[1] >= '0' && rest[1] <= '9'
}

// ConfigFilePath returns the path of the config file in the working
// directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// FileNames returns the config file names searched for, in order.
func FileNames() []string {
	return slices.Clone(configFileNames)
}
