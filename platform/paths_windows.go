// +build windows

package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type windowsPaths struct{}

// CurrentPaths returns path resolution for this Windows install.
func CurrentPaths() Paths {
	return &windowsPaths{}
}

func (wp *windowsPaths) DefaultSDKDirectory() (string, error) {
	pf := os.Getenv("ProgramFiles")
	if pf == "" {
		return "", errors.New("%ProgramFiles% is not set")
	}
	return filepath.Join(pf, vendorDirName), nil
}

func (wp *windowsPaths) DefaultDataDirectory() (string, error) {
	localAppData, err := wp.LocalDataDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(localAppData, vendorDirName), nil
}

func (wp *windowsPaths) LocalDataDirectory() (string, error) {
	lad := os.Getenv("LOCALAPPDATA")
	if lad == "" {
		return "", errors.New("%LOCALAPPDATA% is not set")
	}
	return lad, nil
}
