// Package config manages persistent user settings stored at
// ~/.cudax/config.yaml, backed by Viper with CUDAX_* environment overrides.
// Settings control where toolkit installs live (install_root), the names of
// the active link and its backup, and the sudo escalation policy.
package config
