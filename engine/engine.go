package engine

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/scene"
	"github.com/spaghettifunk/anima/engine/spectrum"
)

// Stage mirrors the reference engine's boot/init/run/shutdown state machine.
type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine sequences a scene through the pack/upload pipeline: Initialize
// loads or builds the spectrum table and starts the table-file watcher, Run
// performs one pack pass (consuming whatever edits raised dirty bits since
// the last call, plus a forced materials/textures repack if the watcher
// observed the persisted table change on disk) and uploads whatever tiers
// were rebuilt, and Shutdown stops the watcher.
type Engine struct {
	currentStage Stage

	Scene    *scene.Scene
	Table    *spectrum.Table
	Uploader scene.Uploader

	watcher *core.Watcher
}

// New constructs an Engine around an already-built scene. uploader may be
// nil for a CPU-only (trace-only) run with no GPU consumer attached.
func New(s *scene.Scene, uploader scene.Uploader) (*Engine, error) {
	if s == nil {
		return nil, errors.New("engine: scene must not be nil")
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		Scene:        s,
		Uploader:     uploader,
	}, nil
}

// Initialize loads, or builds on first run, the spectrum table per cfg and
// starts watching its persistence directory for external regeneration
// (e.g. an offline build step recomputing the table).
func (e *Engine) Initialize(ctx context.Context, cfg *core.SceneConfig) error {
	e.currentStage = EngineStageInitializing

	table, err := spectrum.LoadOrBuild(ctx, cfg.SpectrumTablePath, cfg.SpectrumTableResolution)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	e.Table = table

	watcher, err := core.NewWatcher(filepath.Dir(cfg.SpectrumTablePath))
	if err != nil {
		core.LogWarn("spectrum table watcher unavailable: %s", err.Error())
	} else {
		e.watcher = watcher
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run performs one pack pass and uploads whichever tiers were rebuilt, if
// an Uploader is attached. Returns the dirty mask PackSceneData reports.
func (e *Engine) Run(cfg *core.SceneConfig) (scene.DirtyFlags, error) {
	e.currentStage = EngineStageRunning

	if e.watcher != nil && e.watcher.Dirty() {
		table, err := spectrum.LoadTable(cfg.SpectrumTablePath)
		if err != nil {
			core.LogError("reloading spectrum table: %s", err.Error())
		} else {
			e.Table = table
			e.Scene.Dirty |= scene.DirtyTextures | scene.DirtyMaterials
			core.LogInfo("reloaded spectrum table from disk")
		}
	}

	rebuilt := e.Scene.PackSceneData(e.Table)
	if e.Uploader != nil && rebuilt != scene.DirtyNone {
		scene.UploadPackedFrame(e.Uploader, &e.Scene.Packed, rebuilt)
	}
	return rebuilt, nil
}

// Shutdown stops the file watcher, if one was started.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.watcher != nil {
		e.watcher.Close()
	}
	return nil
}
