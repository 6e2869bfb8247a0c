// Package toolkit implements the CUDA toolkit switch: discovering installed
// toolkit versions under the install root, repointing the active symlink
// (with a backup of the previous link), computing the search-path exports a
// shell needs, and probing the compiler and driver for verification.
//
// Filesystem mutations that may need elevated privileges go through the
// Admin interface so tests can substitute a fake and so sudo escalation
// stays an explicit, configurable policy.
package toolkit
