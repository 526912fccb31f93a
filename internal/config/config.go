package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/boilr-dev/relcollect/internal/branding"
	"github.com/boilr-dev/relcollect/internal/collector"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Keys understood in the config file, as env vars (RELCOLLECT_<KEY>), and as
// flag bindings.
const (
	KeyProjectRoot     = "project_root"
	KeyReleaseRoot     = "release_root"
	KeyPrefix          = "prefix"
	KeyArtifact        = "artifact"
	KeyWindowsMarker   = "windows_marker"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyRequiredVersion = "required_version"
)

// Config is the effective configuration of a run.
type Config struct {
	ProjectRoot     string `mapstructure:"project_root" yaml:"project_root"`
	ReleaseRoot     string `mapstructure:"release_root" yaml:"release_root"`
	Prefix          string `mapstructure:"prefix" yaml:"prefix"`
	Artifact        string `mapstructure:"artifact" yaml:"artifact"`
	WindowsMarker   string `mapstructure:"windows_marker" yaml:"windows_marker"`
	LogLevel        string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat       string `mapstructure:"log_format" yaml:"log_format"`
	RequiredVersion string `mapstructure:"required_version" yaml:"required_version,omitempty"`

	// File is the config file that was applied, empty when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// CollectorOptions maps the config onto collector options.
func (c *Config) CollectorOptions() collector.Options {
	return collector.Options{
		ProjectRoot:   c.ProjectRoot,
		ReleaseRoot:   c.ReleaseRoot,
		Prefix:        c.Prefix,
		ArtifactName:  c.Artifact,
		WindowsMarker: c.WindowsMarker,
	}
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers bind their flags to it before calling Load.
func New(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyProjectRoot, ".")
	// Empty means <project_root>/releases, resolved after loading.
	v.SetDefault(KeyReleaseRoot, "")
	v.SetDefault(KeyPrefix, collector.DefaultPrefix)
	v.SetDefault(KeyArtifact, collector.DefaultArtifactName)
	v.SetDefault(KeyWindowsMarker, collector.DefaultWindowsMarker)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyRequiredVersion, "")
	return v
}

// Load resolves the effective configuration. explicitFile names a config file
// that must exist; when empty, <project_root>/relcollect.yaml is used if
// present. Relative paths are kept relative to the working directory.
func Load(v *viper.Viper, fs afero.Fs, explicitFile string) (*Config, error) {
	file := explicitFile
	if file == "" {
		candidate := filepath.Join(v.GetString(KeyProjectRoot), branding.ConfigFile())
		if ok, _ := afero.Exists(fs, candidate); ok {
			file = candidate
		}
	}

	if file != "" {
		if err := readFile(v, fs, file); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.File = file

	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = "."
	}
	if cfg.ReleaseRoot == "" {
		cfg.ReleaseRoot = filepath.Join(cfg.ProjectRoot, collector.DefaultReleaseDir)
	}
	return &cfg, nil
}

func readFile(v *viper.Viper, fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return fmt.Errorf("validating config file %s: %w", path, err)
	}
	if !result.Valid {
		return &InvalidError{Path: path, Issues: result.Issues}
	}

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}
