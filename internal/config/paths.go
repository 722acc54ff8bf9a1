package config

import (
	"os"
	"path/filepath"
)

const menuFileName = "menu.xml"

// MenuPaths returns the ordered menu file candidates, highest precedence
// first. An explicit override collapses the list to that single path.
func MenuPaths(cfg Menu) []string {
	if cfg.File != "" {
		return []string{cfg.File}
	}
	return candidatePaths(os.Getenv("XDG_CONFIG_HOME"), os.Getenv("HOME"))
}

func candidatePaths(xdgConfigHome, home string) []string {
	var paths []string
	if xdgConfigHome != "" {
		paths = append(paths, filepath.Join(xdgConfigHome, "shellmenu", menuFileName))
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "shellmenu", menuFileName))
	}
	paths = append(paths, filepath.Join("/etc/xdg", "shellmenu", menuFileName))
	return paths
}
