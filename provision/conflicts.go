package provision

import (
	"os"
	"path/filepath"
	"strings"
)

// ConflictFlags is a bit-set of third-party loaders detected in a
// game directory. Known loaders get their own flag; anything else we
// recognize as "some loader" gets the generic one.
type ConflictFlags int

const (
	ConflictNone ConflictFlags = 0

	// Mega Hack v6 (absoluteldr.dll)
	ConflictMHv6 ConflictFlags = 1 << 0
	// Mega Hack v7 (hackproldr.dll)
	ConflictMHv7 ConflictFlags = 1 << 1
	// GD HackerMode (ToastedMarshmellow.dll)
	ConflictGDHM ConflictFlags = 1 << 2
	// Some other loader is present
	ConflictSome ConflictFlags = 1 << 3
)

func (f ConflictFlags) Has(flag ConflictFlags) bool {
	return f&flag != 0
}

func (f ConflictFlags) String() string {
	if f == ConflictNone {
		return "none"
	}

	var names []string
	if f.Has(ConflictMHv6) {
		names = append(names, "Mega Hack v6")
	}
	if f.Has(ConflictMHv7) {
		names = append(names, "Mega Hack v7")
	}
	if f.Has(ConflictGDHM) {
		names = append(names, "GD HackerMode")
	}
	if f.Has(ConflictSome) {
		names = append(names, "unknown loader")
	}
	return strings.Join(names, ", ")
}

type loaderFingerprint struct {
	file string
	flag ConflictFlags
}

// DetectConflictingLoaders inspects a game directory for files left
// by third-party loaders we know about. It returns ConflictNone on
// platforms with no known fingerprints.
func DetectConflictingLoaders(dir string) ConflictFlags {
	return scanForLoaders(dir, knownLoaderFingerprints, genericLoaderFiles)
}

func scanForLoaders(dir string, known []loaderFingerprint, generic []string) ConflictFlags {
	flags := ConflictNone

	for _, fp := range known {
		if _, err := os.Stat(filepath.Join(dir, fp.file)); err == nil {
			flags |= fp.flag
		}
	}

	for _, name := range generic {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			flags |= ConflictSome
			break
		}
	}

	return flags
}
