// Package releases carries the catalog of known CUDA toolkit releases and
// the minimum NVIDIA driver each one requires. The catalog ships embedded in
// the binary and can be overridden by a user-supplied JSON file; either way
// it is validated against the embedded JSON schema before use. The doctor
// command uses it to flag a driver too old for the active toolkit.
package releases
