// Package config holds the architecture pass's few tunables: a struct
// with an unmarshal-onto-defaults constructor plus a package-level
// default, loaded from a YAML project file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is pass-level configuration: none of it changes the walk itself,
// only how paths are resolved and which files count as external.
type Config struct {
	// PackageInitFile is the file name appended to a package's directory
	// path to find its package-init source, e.g. "__init__".
	PackageInitFile string `yaml:"package_init_file"`

	// SourceExtension is appended after PackageInitFile, e.g. ".py".
	SourceExtension string `yaml:"source_extension"`

	// ExternalPathPrefixes marks any path under one of these prefixes as
	// external (outside the user workspace), loosening the synthetic-
	// exports rule and relaxing validation for third-party code the
	// user doesn't own.
	ExternalPathPrefixes []string `yaml:"external_path_prefixes"`
}

// Default returns the configuration the pass uses when no project config
// file is present.
func Default() Config {
	return Config{
		PackageInitFile:      "__init__",
		SourceExtension:      ".py",
		ExternalPathPrefixes: nil,
	}
}

// UnmarshalYAML fills in Default()'s values before applying whatever the
// document overrides, so a project config only needs to list the fields
// it wants to change.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	cfg := plain(Default())
	if err := value.Decode(&cfg); err != nil {
		return err
	}
	*c = Config(cfg)
	return nil
}

// Load reads and parses a project config file, falling back to Default
// if path does not exist.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsExternalPath reports whether path falls under one of the configured
// external prefixes.
func (c Config) IsExternalPath(path string) bool {
	for _, prefix := range c.ExternalPathPrefixes {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
