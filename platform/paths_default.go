// +build !windows,!darwin

package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// The game doesn't officially ship for other platforms, but people do
// run it (and us) under Wine-style setups, so fall back to the
// XDG-ish config dir rather than refusing to start.
type defaultPaths struct{}

func CurrentPaths() Paths {
	return &defaultPaths{}
}

func (dp *defaultPaths) DefaultSDKDirectory() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "finding user config directory")
	}
	return filepath.Join(configDir, vendorDirName), nil
}

func (dp *defaultPaths) DefaultDataDirectory() (string, error) {
	return dp.DefaultSDKDirectory()
}

func (dp *defaultPaths) LocalDataDirectory() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "finding user config directory")
	}
	return configDir, nil
}
