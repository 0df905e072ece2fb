package manager

import "path/filepath"

// An Installation records one game install the loader has been (or is
// about to be) applied to.
type Installation struct {
	// Path is the directory containing the game executable. Two
	// installations are the same installation iff their paths are
	// equal.
	Path string `json:"path"`

	// Exe is the file name of the game executable. Descriptive only,
	// not part of the identity.
	Exe string `json:"exe"`
}

// InstallationForExe builds a record from the path of a game
// executable the user pointed us at.
func InstallationForExe(exePath string) Installation {
	return Installation{
		Path: filepath.Dir(exePath),
		Exe:  filepath.Base(exePath),
	}
}
