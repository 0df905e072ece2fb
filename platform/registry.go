package platform

// Registry persists the data-directory override the uninstaller needs
// in order to find our state later. Only Windows has one; on other
// platforms CurrentRegistry returns nil and callers skip the registry
// steps entirely.
type Registry interface {
	// ReadString reads the override value. ok is false when the key
	// or value doesn't exist.
	ReadString() (value string, ok bool, err error)

	// WriteString creates the key if needed and sets the override
	// value.
	WriteString(value string) error

	// DeleteKey removes the key and everything under it. Deleting a
	// key that was never created is not an error.
	DeleteKey() error
}
