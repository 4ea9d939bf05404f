package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	crerr "github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 250 * time.Millisecond

// Provider serves the latest successfully loaded catalog. A failed reload
// keeps the previous snapshot.
type Provider struct {
	path    string
	current atomic.Pointer[phase.Catalog]
	logger  *logging.Logger
}

func NewProvider(path string, logger *logging.Logger) (*Provider, error) {
	if logger == nil {
		logger = logging.Default()
	}
	p := &Provider{path: path, logger: logger}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewFixedProvider wraps an already built catalog; Reload and Watch are
// no-ops for it.
func NewFixedProvider(c *phase.Catalog, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.Default()
	}
	p := &Provider{logger: logger}
	p.current.Store(c)
	return p
}

func (p *Provider) Catalog() *phase.Catalog {
	return p.current.Load()
}

func (p *Provider) Path() string {
	return p.path
}

func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}
	c, err := Build(p.path)
	if err != nil {
		return err
	}
	p.current.Store(c)
	p.logger.Info("catalog loaded", "path", p.path, "phases", c.Len())
	return nil
}

// Watch reloads the catalog when its file changes until ctx is done.
func (p *Provider) Watch(ctx context.Context) error {
	if p.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return crerr.Wrap(err, "create catalog watcher")
	}
	defer w.Close()

	dir := filepath.Dir(p.path)
	file := filepath.Base(p.path)
	if err := w.Add(dir); err != nil {
		return crerr.Wrapf(err, "watch catalog dir %s", dir)
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()
	schedule := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, func() {
			if err := p.Reload(); err != nil {
				p.logger.Warn("catalog reload failed; keeping previous catalog", "path", p.path, "error", err)
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return crerr.New("catalog watcher closed")
			}
			if filepath.Base(ev.Name) != file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				schedule()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return crerr.New("catalog watcher closed")
			}
			p.logger.Warn("catalog watcher error", "error", err)
		}
	}
}
