package actions

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vcnkl/xbuild/logger"
	"github.com/vcnkl/xbuild/models"
	"github.com/vcnkl/xbuild/watcher"
)

// WatchAction reruns a full build pass whenever the watched source paths
// change. Rebuilds are debounced by the watcher and run on its callback
// goroutine, so they stay sequential.
type WatchAction struct {
	build  *BuildAction
	log    logger.Logger
	paths  []string
	ignore []string
}

func NewWatchAction(build *BuildAction, log logger.Logger, paths []string, ignore []string) *WatchAction {
	var filtered []string
	for _, pattern := range ignore {
		if pattern != "" {
			filtered = append(filtered, pattern)
		}
	}

	return &WatchAction{
		build:  build,
		log:    log,
		paths:  paths,
		ignore: filtered,
	}
}

func (a *WatchAction) Execute(ctx context.Context, triples []models.Triple) error {
	if len(a.paths) == 0 {
		return errors.New("no watch paths configured")
	}

	runBuild := func() {
		rep, err := a.build.Execute(ctx, triples)
		if err != nil {
			a.log.Error("run failed", logger.Err(err))
			return
		}
		if rep.OK() {
			a.log.Info("all targets built",
				logger.Int("targets", len(rep.Results)),
				logger.Duration("duration", rep.Duration))
		} else {
			a.log.Error("build failed",
				logger.Int("failed", len(rep.Failed())),
				logger.Int("targets", len(rep.Results)))
		}
	}

	runBuild()

	w, err := watcher.NewWatcher(a.paths, a.ignore)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(path string) {
		a.log.Info("file changed, rebuilding...", logger.String("path", path))
		runBuild()
	})

	a.log.Info("watching for changes...")
	return w.Start(ctx)
}
