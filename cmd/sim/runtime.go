package main

import (
	"path/filepath"
	"time"

	"swarmisle/internal/persistence/indexdb"
	"swarmisle/internal/sim/world"
	"swarmisle/internal/transport/observer"
)

func openIndex(dataDir string, disable bool) (*indexdb.SQLiteIndex, error) {
	if disable {
		return nil, nil
	}
	return indexdb.OpenSQLite(filepath.Join(dataDir, "index", "run.sqlite"))
}

// indexTickLogger keeps a nil index from becoming a non-nil interface.
func indexTickLogger(idx *indexdb.SQLiteIndex) world.TickLogger {
	if idx == nil {
		return nil
	}
	return idx
}

type multiTickLogger []world.TickLogger

func (m multiTickLogger) WriteTick(entry world.TickLogEntry) error {
	for _, l := range m {
		if l != nil {
			_ = l.WriteTick(entry)
		}
	}
	return nil
}

// framePublisher turns tick callbacks into observer frames. The engine
// calls it synchronously at the end of Step, so reading e here is safe.
type framePublisher struct {
	hub   *observer.Hub
	e     *world.Engine
	delay time.Duration
}

func (p *framePublisher) WriteTick(world.TickLogEntry) error {
	if p == nil || p.hub == nil || p.e == nil {
		return nil
	}
	if err := p.hub.Publish(observer.FrameFromEngine(p.e)); err != nil {
		return err
	}
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return nil
}
