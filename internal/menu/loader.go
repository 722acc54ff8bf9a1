package menu

import (
	"os"

	"github.com/atomicstack/shellmenu/internal/logging/events"
)

// Load reads menu definitions from the candidate paths, ordered highest
// precedence first. In first-found mode the first readable file wins
// outright. In merge mode every readable file is parsed in precedence order;
// duplicate ids are rejected by the registry with the earlier registration
// staying authoritative, so across merged files the earliest-declared menu
// wins.
//
// An unreadable path is skipped silently; a file the XML decoder rejects
// aborts that source only and the remaining candidates are still considered.
func Load(reg *Registry, paths []string, merge bool) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		events.Menu.SourceRead(path)
		err = ParseDocument(reg, f)
		f.Close()
		if err != nil {
			events.Menu.SourceMalformed(path, err)
			continue
		}
		if !merge {
			break
		}
	}
}
