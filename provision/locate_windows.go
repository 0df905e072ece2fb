// +build windows

package provision

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const steamKeyPath = `Software\WOW6432Node\Valve\Steam`

const gameRelPath = `steamapps\common\Geometry Dash\GeometryDash.exe`

// FindGamePath tries to locate the game executable through Steam: the
// default library first, then any extra library folders listed in
// Steam's config.vdf.
func FindGamePath() (string, bool) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, steamKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer key.Close()

	installPath, _, err := key.GetStringValue("InstallPath")
	if err != nil {
		return "", false
	}
	installPath = collapseBackslashes(installPath)

	firstTry := filepath.Join(installPath, gameRelPath)
	if isRegularFile(firstTry) {
		return firstTry, true
	}

	config, err := os.Open(filepath.Join(installPath, "config", "config.vdf"))
	if err != nil {
		return "", false
	}
	defer config.Close()

	scanner := bufio.NewScanner(config)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "BaseInstallFolder_") {
			continue
		}

		folder, ok := lastQuotedValue(line)
		if !ok {
			continue
		}

		try := filepath.Join(collapseBackslashes(folder), gameRelPath)
		if isRegularFile(try) {
			return try, true
		}
	}

	return "", false
}

func isRegularFile(path string) bool {
	stats, err := os.Stat(path)
	return err == nil && stats.Mode().IsRegular()
}

// Steam writes paths with doubled backslashes in config.vdf.
func collapseBackslashes(s string) string {
	for strings.Contains(s, `\\`) {
		s = strings.Replace(s, `\\`, `\`, -1)
	}
	return s
}

// lastQuotedValue extracts the last "quoted" token of a vdf line.
func lastQuotedValue(line string) (string, bool) {
	end := strings.LastIndex(line, `"`)
	if end <= 0 {
		return "", false
	}
	start := strings.LastIndex(line[:end], `"`)
	if start < 0 {
		return "", false
	}
	return line[start+1 : end], true
}
