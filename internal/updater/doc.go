// Package updater checks GitHub releases for newer versions of cudax and
// prints a non-blocking update banner from a 24-hour cache. It deliberately
// does not replace the running binary: cudax is typically installed
// system-wide, so `cudax update` prints instructions instead.
package updater
