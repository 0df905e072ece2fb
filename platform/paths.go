package platform

// Paths resolves the directories the installer cares about on the
// current platform. Core packages only ever talk to this interface so
// they stay platform-agnostic and testable.
type Paths interface {
	// DefaultSDKDirectory is where the SDK payload goes unless the
	// user picked another location.
	DefaultSDKDirectory() (string, error)

	// DefaultDataDirectory is where installer.json lives, absent a
	// registry override.
	DefaultDataDirectory() (string, error)

	// LocalDataDirectory is the per-user root under which games keep
	// their save data.
	LocalDataDirectory() (string, error)
}

const vendorDirName = "GeodeSDK"
