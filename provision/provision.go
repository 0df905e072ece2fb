package provision

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/geode-sdk/installer/archive"
	"github.com/geode-sdk/installer/manager"
	"github.com/geode-sdk/installer/platform"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

// loaderDirName is the loader's footprint inside a game directory:
// everything it owns lives under <gameDir>/geode, plus a couple of
// payload files next to the executable.
const loaderDirName = "geode"

var loaderPayloadFiles = []string{
	"Geode.dll",
	"XInput9_1_0.dll",
}

// InstallLoaderFor applies a downloaded loader archive to the game at
// gamePath (the executable's path) and records the installation with
// mgr. The caller is responsible for calling mgr.Save afterwards.
func InstallLoaderFor(mgr *manager.Manager, gamePath string, archivePath string, consumer *state.Consumer) (manager.Installation, error) {
	inst := manager.InstallationForExe(gamePath)

	err := archive.Extract(archive.ExtractParams{
		ArchivePath: archivePath,
		Destination: inst.Path,
		Consumer:    consumer,
	})
	if err != nil {
		return manager.Installation{}, errors.WithMessage(err, "installing loader")
	}

	mgr.Insert(inst)
	return inst, nil
}

// InstallExtensionFor copies a downloaded extension artifact into the
// installation's mods directory under filename, overwriting any
// previous version of the same file.
func InstallExtensionFor(inst manager.Installation, archivePath string, filename string) error {
	targetDir := filepath.Join(inst.Path, loaderDirName, "mods")
	err := os.MkdirAll(targetDir, 0755)
	if err != nil {
		return &DirectoryCreateError{Path: targetDir, Reason: err}
	}

	dest := filepath.Join(targetDir, filename)
	err = copyFile(archivePath, dest)
	if err != nil {
		return &FileCopyError{Path: dest, Reason: err}
	}

	return nil
}

// UninstallFrom removes the loader's footprint from an installation:
// the geode subtree and the fixed payload files. Removal is
// best-effort per item; items that aren't there (or won't go away)
// are skipped with a warning rather than failing the whole operation.
func UninstallFrom(inst manager.Installation, consumer *state.Consumer) error {
	items := []string{filepath.Join(inst.Path, loaderDirName)}
	for _, name := range loaderPayloadFiles {
		items = append(items, filepath.Join(inst.Path, name))
	}

	for _, item := range items {
		if _, err := os.Stat(item); err != nil {
			continue
		}
		err := os.RemoveAll(item)
		if err != nil && consumer != nil {
			consumer.Warnf("Leaving %s behind: %s", item, err.Error())
		}
	}

	return nil
}

// DeleteSaveDataFrom removes the loader's save data for an
// installation. The game keeps it under the platform's local-data
// root, in a directory named after the executable (sans extension).
func DeleteSaveDataFrom(paths platform.Paths, inst manager.Installation) error {
	root, err := paths.LocalDataDirectory()
	if err != nil {
		return errors.WithStack(err)
	}

	stem := strings.TrimSuffix(inst.Exe, filepath.Ext(inst.Exe))
	saveDir := filepath.Join(root, stem, loaderDirName)

	if _, err := os.Stat(saveDir); err != nil {
		if os.IsNotExist(err) {
			return ErrSaveDataNotFound
		}
		return errors.WithStack(err)
	}

	err = os.RemoveAll(saveDir)
	if err != nil {
		return &DirectoryRemoveError{Path: saveDir, Reason: err}
	}

	return nil
}

func copyFile(src string, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	if err != nil {
		return err
	}

	return out.Close()
}
