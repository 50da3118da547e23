// Package config loads and validates help compiler configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-helpmaker/internal/fileutil"
	"github.com/alnah/go-helpmaker/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxExtensionLength = 20   // ".help", ".md"
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxNameLength      = 64   // tag, attribute and style names
	MaxControlLength   = 100  // control attribute value
	MaxManifestLength  = 255  // archive entry name
)

// ConfigDirName is the directory under the user config dir searched for
// named configs.
const ConfigDirName = "go-helpmaker"

// Config holds all configuration for a help build.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Staging   StagingConfig   `yaml:"staging"`
	Control   ControlConfig   `yaml:"control"`
	Resources ResourcesConfig `yaml:"resources"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Log       LogConfig       `yaml:"log"`
}

// InputConfig defines how help sources are discovered.
type InputConfig struct {
	Extension string `yaml:"extension"` // source file extension (default: ".help")
}

// StagingConfig defines where intermediate stage trees are written.
type StagingConfig struct {
	WorkDir string `yaml:"workDir"` // empty = temporary directory removed after the run
}

// ControlConfig describes the element carrying a context-help control id.
type ControlConfig struct {
	Tag        string `yaml:"tag"`        // default: "meta"
	NameKey    string `yaml:"nameKey"`    // default: "name"
	NameValue  string `yaml:"nameValue"`  // default: "control"
	ContentKey string `yaml:"contentKey"` // default: "content"
}

// ResourcesConfig describes the element referencing a resource to stage.
type ResourcesConfig struct {
	Tag  string `yaml:"tag"`  // default: "img"
	Attr string `yaml:"attr"` // default: "src"
}

// MarkdownConfig tunes the markdown converter.
type MarkdownConfig struct {
	Highlight bool `yaml:"highlight"` // syntax highlighting for fenced code
	HardWraps bool `yaml:"hardWraps"` // newlines become <br />
}

// ArchiveConfig defines how the packaged help archive is assembled.
type ArchiveConfig struct {
	Style     string `yaml:"style"`     // page stylesheet name (default: "default")
	Template  string `yaml:"template"`  // page template name (default: "page")
	AssetPath string `yaml:"assetPath"` // empty = embedded assets
	Manifest  string `yaml:"manifest"`  // control manifest entry (default: "controls.yaml")
}

// LogConfig defines log output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, notice, warn, error
	Format string `yaml:"format"` // console or json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{Extension: ".help"},
		Control: ControlConfig{
			Tag:        "meta",
			NameKey:    "name",
			NameValue:  "control",
			ContentKey: "content",
		},
		Resources: ResourcesConfig{Tag: "img", Attr: "src"},
		Markdown:  MarkdownConfig{Highlight: true},
		Archive: ArchiveConfig{
			Style:    "default",
			Template: "page",
			Manifest: "controls.yaml",
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := fileutil.ValidateExtension(c.Input.Extension); err != nil {
		return fmt.Errorf("%w: input.extension: %w", ErrInvalidValue, err)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.extension", c.Input.Extension, MaxExtensionLength},
		{"staging.workDir", c.Staging.WorkDir, MaxPathLength},
		{"control.tag", c.Control.Tag, MaxNameLength},
		{"control.nameKey", c.Control.NameKey, MaxNameLength},
		{"control.nameValue", c.Control.NameValue, MaxControlLength},
		{"control.contentKey", c.Control.ContentKey, MaxNameLength},
		{"resources.tag", c.Resources.Tag, MaxNameLength},
		{"resources.attr", c.Resources.Attr, MaxNameLength},
		{"archive.style", c.Archive.Style, MaxNameLength},
		{"archive.template", c.Archive.Template, MaxNameLength},
		{"archive.assetPath", c.Archive.AssetPath, MaxPathLength},
		{"archive.manifest", c.Archive.Manifest, MaxManifestLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"control.tag", c.Control.Tag},
		{"control.nameKey", c.Control.NameKey},
		{"control.nameValue", c.Control.NameValue},
		{"control.contentKey", c.Control.ContentKey},
		{"resources.tag", c.Resources.Tag},
		{"resources.attr", c.Resources.Attr},
		{"archive.template", c.Archive.Template},
		{"archive.manifest", c.Archive.Manifest},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s: required", ErrInvalidValue, f.name)
		}
	}

	if strings.ContainsAny(c.Archive.Manifest, `/\`) {
		return fmt.Errorf("%w: archive.manifest: %q must be a plain file name", ErrInvalidValue, c.Archive.Manifest)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format: %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "notice", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level: %q", ErrInvalidValue, c.Log.Level)
	}

	return nil
}

// fillDefaults restores DefaultConfig values for string fields left empty.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	for _, f := range []struct {
		dst *string
		def string
	}{
		{&c.Input.Extension, def.Input.Extension},
		{&c.Control.Tag, def.Control.Tag},
		{&c.Control.NameKey, def.Control.NameKey},
		{&c.Control.NameValue, def.Control.NameValue},
		{&c.Control.ContentKey, def.Control.ContentKey},
		{&c.Resources.Tag, def.Resources.Tag},
		{&c.Resources.Attr, def.Resources.Attr},
		{&c.Archive.Template, def.Archive.Template},
		{&c.Archive.Manifest, def.Archive.Manifest},
		{&c.Log.Level, def.Log.Level},
		{&c.Log.Format, def.Log.Format},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in lookup order:
// the current directory, then ~/.config/go-helpmaker/, each with .yaml
// before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
