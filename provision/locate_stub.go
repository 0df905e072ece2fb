// +build !windows

package provision

// FindGamePath has no automatic path figuring-out to do here; the
// user picks the executable themselves.
func FindGamePath() (string, bool) {
	return "", false
}
