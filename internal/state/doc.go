// Package state persists the switcher's small bit of memory (which version
// is active, and which one was active before it) in ~/.cudax/state.yaml.
// The previous version is what makes `cudax use -` work.
package state
