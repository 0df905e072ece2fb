// +build windows

package platform

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

const (
	regKeyPath      = `Software\GeodeSDK`
	regValueInstall = "InstallInfo"
)

type hklmRegistry struct{}

// CurrentRegistry returns the HKLM-backed override store.
func CurrentRegistry() Registry {
	return &hklmRegistry{}
}

func (hr *hklmRegistry) ReadString() (string, bool, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, regKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if err == registry.ErrNotExist {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "opening GeodeSDK registry key")
	}
	defer key.Close()

	value, _, err := key.GetStringValue(regValueInstall)
	if err != nil {
		if err == registry.ErrNotExist {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "reading InstallInfo registry value")
	}

	return value, true, nil
}

func (hr *hklmRegistry) WriteString(value string) error {
	key, _, err := registry.CreateKey(registry.LOCAL_MACHINE, regKeyPath, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "creating GeodeSDK registry key")
	}
	defer key.Close()

	err = key.SetStringValue(regValueInstall, value)
	if err != nil {
		return errors.Wrap(err, "setting InstallInfo registry value")
	}

	return nil
}

func (hr *hklmRegistry) DeleteKey() error {
	err := registry.DeleteKey(registry.LOCAL_MACHINE, regKeyPath)
	if err != nil && err != registry.ErrNotExist {
		return errors.Wrap(err, "deleting GeodeSDK registry key")
	}
	return nil
}
