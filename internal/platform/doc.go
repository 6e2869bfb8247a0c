// Package platform provides the low-level symlink operations the switcher
// is built on: creation, removal, and inspection. Callers that need elevated
// privileges go through toolkit.Admin instead of calling these helpers
// directly.
package platform
