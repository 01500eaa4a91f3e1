package repository

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// SiteRepository holds the parsed config file and reloads the site facts
// when the file changes on disk.
type SiteRepository struct {
	mu         sync.RWMutex
	configData config.FileConfig
	configPath string
	watcher    *fsnotify.Watcher
	onReload   []func(config.FileConfig)
}

// NewSiteRepository creates a repository for the file at configPath. Until
// LoadFromFile succeeds it serves config.Default.
func NewSiteRepository(configPath string) *SiteRepository {
	return &SiteRepository{
		configData: config.Default(),
		configPath: configPath,
	}
}

// Path returns the config file location.
func (r *SiteRepository) Path() string {
	return r.configPath
}

// LoadFromFile loads configuration from file.
func (r *SiteRepository) LoadFromFile() error {
	cfg, err := config.ReadConfig(r.configPath)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.configData = cfg
	hooks := slices.Clone(r.onReload)
	r.mu.Unlock()

	for _, h := range hooks {
		h(cfg)
	}
	return nil
}

// Config returns the current configuration.
func (r *SiteRepository) Config() config.FileConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configData
}

// Site returns the current site facts.
func (r *SiteRepository) Site() config.SiteConfig {
	return r.Config().Site
}

// OnReload registers fn to run after every successful load.
func (r *SiteRepository) OnReload(fn func(config.FileConfig)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReload = append(r.onReload, fn)
}

// Watch sets a fsnotify watcher on the file for hot reload
func (r *SiteRepository) Watch() error {
	abs, err := filepath.Abs(r.configPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}

	r.mu.Lock()
	r.watcher = w
	r.mu.Unlock()

	const debounceDelay = 350 * time.Millisecond

	go func() {
		reload := func() {
			for i := 0; i < 10; i++ {
				if _, err := os.Stat(abs); err == nil {
					break
				}
				time.Sleep(100 * time.Millisecond)
			}

			utils.Logger.Info("config file changed", "path", abs)
			if err := r.LoadFromFile(); err != nil {
				utils.Logger.Warn("failed to reload config", "err", err)
			}
		}

		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					if timer == nil {
						timer = time.AfterFunc(debounceDelay, reload)
					} else {
						timer.Reset(debounceDelay)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				utils.Logger.Warn("fsnotify error", "err", err)
			}
		}
	}()

	return nil
}

// Close stops the watcher, if any.
func (r *SiteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher == nil {
		return nil
	}
	err := r.watcher.Close()
	r.watcher = nil
	return err
}
