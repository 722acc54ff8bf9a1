package app

import (
	"errors"
	"path/filepath"

	"github.com/atomicstack/shellmenu/internal/action"
	"github.com/atomicstack/shellmenu/internal/config"
	"github.com/atomicstack/shellmenu/internal/layout"
	"github.com/atomicstack/shellmenu/internal/logging"
	"github.com/atomicstack/shellmenu/internal/menu"
	"github.com/atomicstack/shellmenu/internal/scene"
	"github.com/atomicstack/shellmenu/internal/session"
	"github.com/atomicstack/shellmenu/internal/theme"
	"github.com/atomicstack/shellmenu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// Run bootstraps the engine and executes the Bubble Tea program.
func Run(cfg config.Config) error {
	metrics := theme.DefaultMetrics()
	scn := scene.NewStub()
	reg := menu.NewRegistry(scn, metrics)
	paths := config.MenuPaths(cfg.Menu)

	reload := func() {
		menu.Load(reg, paths, cfg.Menu.Merge)
		menu.EnsureDefaults(reg, cfg.Menu.Workspaces)
		layout.PostProcess(reg)
		menu.Validate(reg)
	}
	reload()

	engine := session.New(reg, layout.Single(cfg.Menu.Width, cfg.Menu.Height), action.LogDispatcher{})
	engine.Reload = reload

	model := ui.NewModel(engine, cfg.Menu.Width, cfg.Menu.Height)
	program := tea.NewProgram(model, tea.WithAltScreen())

	stopWatch := watchMenuFiles(paths, func() {
		program.Send(ui.ReloadMsg{})
	})
	defer stopWatch()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// watchMenuFiles reconfigures when any candidate menu file changes on disk.
// Directories are watched rather than files so editors that replace the file
// still trigger.
func watchMenuFiles(paths []string, onChange func()) func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Error(err)
		return func() {}
	}

	watched := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		dir := filepath.Dir(path)
		if _, ok := watched[dir]; ok {
			continue
		}
		watched[dir] = struct{}{}
		// Missing directories are fine; the candidate simply is not
		// watchable.
		_ = watcher.Add(dir)
	}

	names := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		names[filepath.Clean(path)] = struct{}{}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if _, ok := names[filepath.Clean(event.Name)]; !ok {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Error(err)
			}
		}
	}()

	return func() { watcher.Close() }
}
