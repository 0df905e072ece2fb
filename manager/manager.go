package manager

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/geode-sdk/installer/platform"
	"github.com/pkg/errors"
)

// InstallDataFile is the name of the persisted metadata document,
// relative to the data directory.
const InstallDataFile = "installer.json"

// Manager tracks which game installations have the loader applied,
// along with where the SDK payload and our own metadata live. There's
// one per process, constructed at startup and passed around
// explicitly. All methods are safe for concurrent use.
type Manager struct {
	paths platform.Paths
	reg   platform.Registry

	mu            sync.Mutex
	sdkDirectory  string
	dataDirectory string
	sdkInstalled  bool
	dataLoaded    bool
	installations []Installation
}

// installData mirrors installer.json. A nil SDK field means "no SDK
// directory installed".
type installData struct {
	SDK           *string        `json:"sdk,omitempty"`
	Installations []Installation `json:"installations"`
}

// New returns a manager with empty state. Call Load before reading
// anything out of it. reg may be nil on platforms without a registry.
func New(paths platform.Paths, reg platform.Registry) *Manager {
	return &Manager{
		paths: paths,
		reg:   reg,
	}
}

// Load determines the default directories, applies the registry
// override where one exists, then reads installer.json if present.
// A missing metadata file is not an error: it just means first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dataDir, err := m.paths.DefaultDataDirectory()
	if err != nil {
		return errors.WithStack(err)
	}
	sdkDir, err := m.paths.DefaultSDKDirectory()
	if err != nil {
		return errors.WithStack(err)
	}
	m.dataDirectory = dataDir
	m.sdkDirectory = sdkDir

	if m.reg != nil {
		// A failed probe reads as absent, like the original installer.
		value, ok, _ := m.reg.ReadString()
		if ok {
			m.dataDirectory = value
			m.dataLoaded = true
		}
	} else {
		// No registry to consult here, so we can't tell first runs
		// apart from returning users. Mirrors the original behavior,
		// see DESIGN.md.
		m.dataLoaded = true
	}

	installDataPath := filepath.Join(m.dataDirectory, InstallDataFile)
	if _, err := os.Stat(installDataPath); err != nil {
		// No metadata file (or no data directory at all): first run.
		return nil
	}

	data, err := ioutil.ReadFile(installDataPath)
	if err != nil {
		return &PersistedStateUnreadableError{Path: installDataPath, Reason: err}
	}

	var doc installData
	err = json.Unmarshal(data, &doc)
	if err != nil {
		return &PersistedStateCorruptError{Path: installDataPath, Reason: err}
	}

	if doc.SDK != nil {
		m.sdkDirectory = *doc.SDK
		m.sdkInstalled = true
	}
	for _, inst := range doc.Installations {
		if inst.Path == "" || inst.Exe == "" {
			return &PersistedStateCorruptError{
				Path:   installDataPath,
				Reason: errors.New("installation entry is missing path or exe"),
			}
		}
		m.insert(inst)
	}

	return nil
}

// Save writes installer.json, then records the data directory in the
// registry where one exists. If the file write fails, the registry is
// left untouched. If the registry write fails, the file stays as
// written and the failure is reported for the caller to surface.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := os.MkdirAll(m.dataDirectory, 0755)
	if err != nil {
		return &DirectoryCreateError{Path: m.dataDirectory, Reason: err}
	}

	doc := installData{
		Installations: append([]Installation{}, m.installations...),
	}
	if m.sdkInstalled {
		sdk := m.sdkDirectory
		doc.SDK = &sdk
	}

	data, err := json.MarshalIndent(&doc, "", "    ")
	if err != nil {
		return errors.WithStack(err)
	}

	installDataPath := filepath.Join(m.dataDirectory, InstallDataFile)
	err = ioutil.WriteFile(installDataPath, data, 0644)
	if err != nil {
		return &FileWriteError{Path: installDataPath, Reason: err}
	}

	if m.reg != nil {
		err = m.reg.WriteString(m.dataDirectory)
		if err != nil {
			return &RegistryWriteError{Reason: err}
		}
	}

	return nil
}

// Delete removes the registry override, then the whole data
// directory. After this the next run looks like a first run.
func (m *Manager) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reg != nil {
		err := m.reg.DeleteKey()
		if err != nil {
			return &RegistryDeleteError{Reason: err}
		}
	}

	if _, err := os.Stat(m.dataDirectory); err == nil {
		err = os.RemoveAll(m.dataDirectory)
		if err != nil {
			return &DirectoryRemoveError{Path: m.dataDirectory, Reason: err}
		}
	}

	return nil
}

// UninstallSDK removes the SDK payload directory, if present.
func (m *Manager) UninstallSDK() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.sdkDirectory); err == nil {
		err = os.RemoveAll(m.sdkDirectory)
		if err != nil {
			return &DirectoryRemoveError{Path: m.sdkDirectory, Reason: err}
		}
	}

	return nil
}

// Insert records an installation. Inserting a second record with the
// same path replaces the stored one (last write wins), so the set
// never holds two records for one directory.
func (m *Manager) Insert(inst Installation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(inst)
}

func (m *Manager) insert(inst Installation) {
	for i, existing := range m.installations {
		if existing.Path == inst.Path {
			m.installations[i] = inst
			return
		}
	}
	m.installations = append(m.installations, inst)
}

// Remove forgets an installation. Removing one we never knew about is
// a no-op.
func (m *Manager) Remove(inst Installation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.installations {
		if existing.Path == inst.Path {
			m.installations = append(m.installations[:i], m.installations[i+1:]...)
			return
		}
	}
}

// Installations returns a copy of the recorded installations, in
// insertion order.
func (m *Manager) Installations() []Installation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Installation{}, m.installations...)
}

// SDKDirectory returns where the SDK payload lives (or would live).
func (m *Manager) SDKDirectory() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sdkDirectory
}

// SetSDKDirectory records a deliberately chosen SDK location. The SDK
// counts as installed from here on (and gets persisted by the next
// Save).
func (m *Manager) SetSDKDirectory(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sdkDirectory = dir
	m.sdkInstalled = true
}

// DataDirectory returns where installer.json lives.
func (m *Manager) DataDirectory() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dataDirectory
}

// SDKInstalled reports whether an SDK directory has been deliberately
// recorded. It's never true for a freshly defaulted directory.
func (m *Manager) SDKInstalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sdkInstalled
}

// FirstTime reports whether we found no trace of a previous run.
func (m *Manager) FirstTime() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.dataLoaded
}
