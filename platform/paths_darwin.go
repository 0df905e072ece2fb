// +build darwin

package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type darwinPaths struct{}

// CurrentPaths returns path resolution for this macOS install.
func CurrentPaths() Paths {
	return &darwinPaths{}
}

func (dp *darwinPaths) appSupport() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "finding home directory")
	}
	return filepath.Join(home, "Library", "Application Support"), nil
}

func (dp *darwinPaths) DefaultSDKDirectory() (string, error) {
	appSupport, err := dp.appSupport()
	if err != nil {
		return "", err
	}
	return filepath.Join(appSupport, vendorDirName), nil
}

// On macOS the SDK directory and the data directory coincide.
func (dp *darwinPaths) DefaultDataDirectory() (string, error) {
	return dp.DefaultSDKDirectory()
}

func (dp *darwinPaths) LocalDataDirectory() (string, error) {
	return dp.appSupport()
}
