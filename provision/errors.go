package provision

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSaveDataNotFound means the game's save-data directory doesn't
// exist, so there's nothing to delete.
var ErrSaveDataNotFound = errors.New("save data directory not found")

// DirectoryCreateError means the mods directory couldn't be created.
type DirectoryCreateError struct {
	Path   string
	Reason error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("unable to create Geode mods directory under %s: %s", e.Path, e.Reason)
}

// FileCopyError means the extension artifact couldn't be copied into
// place.
type FileCopyError struct {
	Path   string
	Reason error
}

func (e *FileCopyError) Error() string {
	return fmt.Sprintf("unable to copy Geode extension to %s: %s", e.Path, e.Reason)
}

// DirectoryRemoveError means a recursive removal failed.
type DirectoryRemoveError struct {
	Path   string
	Reason error
}

func (e *DirectoryRemoveError) Error() string {
	return fmt.Sprintf("unable to remove directory %s: %s", e.Path, e.Reason)
}
