package manager

import "fmt"

// DirectoryCreateError means we couldn't create the data directory.
type DirectoryCreateError struct {
	Path   string
	Reason error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("unable to create directory %s: %s", e.Path, e.Reason)
}

// FileWriteError means installer.json couldn't be opened for writing.
type FileWriteError struct {
	Path   string
	Reason error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("unable to write %s: %s", e.Path, e.Reason)
}

// DirectoryRemoveError means a recursive removal failed, for example
// because a file in it is still in use.
type DirectoryRemoveError struct {
	Path   string
	Reason error
}

func (e *DirectoryRemoveError) Error() string {
	return fmt.Sprintf("unable to remove directory %s: %s", e.Path, e.Reason)
}

// RegistryWriteError is reported when the file save went through but
// the registry override could not be recorded. Callers should surface
// it loudly: without the override the uninstaller can't find us later.
type RegistryWriteError struct {
	Reason error
}

func (e *RegistryWriteError) Error() string {
	return fmt.Sprintf("unable to save registry value - the installer won't be able to uninstall Geode: %s", e.Reason)
}

// RegistryDeleteError means the override key could not be removed.
type RegistryDeleteError struct {
	Reason error
}

func (e *RegistryDeleteError) Error() string {
	return fmt.Sprintf("unable to delete registry key: %s", e.Reason)
}

// PersistedStateUnreadableError means installer.json exists but could
// not be opened or read.
type PersistedStateUnreadableError struct {
	Path   string
	Reason error
}

func (e *PersistedStateUnreadableError) Error() string {
	return fmt.Sprintf("unable to load installation info from %s: %s", e.Path, e.Reason)
}

// PersistedStateCorruptError means installer.json exists but doesn't
// parse, or is missing required fields.
type PersistedStateCorruptError struct {
	Path   string
	Reason error
}

func (e *PersistedStateCorruptError) Error() string {
	return fmt.Sprintf("installation info at %s is corrupt: %s", e.Path, e.Reason)
}
