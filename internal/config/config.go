package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cudax-labs/cudax/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyInstallRoot = "install_root"
	KeyLinkName    = "link_name"
	KeyBackupName  = "backup_name"
	KeySudo        = "sudo"
	// KeyMirror points update checks at a GitHub API mirror.
	KeyMirror = "mirror"
)

// Defaults for the toolkit layout and privilege policy.
const (
	DefaultInstallRoot = "/usr/local"
	DefaultLinkName    = "cuda"
	DefaultBackupName  = "cuda_backup"
	DefaultSudo        = "auto"
)

// Dir returns the path to the Cudax config directory (~/.cudax/).
// The CUDAX_HOME environment variable overrides the default location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.cudax/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyInstallRoot, DefaultInstallRoot)
	viper.SetDefault(KeyLinkName, DefaultLinkName)
	viper.SetDefault(KeyBackupName, DefaultBackupName)
	viper.SetDefault(KeySudo, DefaultSudo)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
