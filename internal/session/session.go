// Package session keeps one packing run alive across a sequence of
// NextPackingOptions/PackWithOption calls: the registry that looks a run up
// by id, the one-level undo stack, and the opaque OptionHandle a caller
// rounds-trips between rendering a strip preview and committing it. Nothing
// in internal/engine retains any of this; a Session here is the only thing
// that outlives a single call.
package session

import (
	"context"
	"image"
	"sync"

	"github.com/google/uuid"

	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/raster"
)

// handleThumbMax bounds the preview thumbnail stored alongside a strip
// handle, so a UI can list pending options without decoding full-res strips.
const handleThumbMax = 200

// Handle is the in-memory record behind an OptionHandle id: the rendered
// strip preview plus the option it came from, so a later PackWithOption
// call can be driven purely from a HandleID string without the caller
// having to re-transmit the full PackingOption.
type Handle struct {
	ID        string
	Option    model.PackingOption
	Strip     image.Image
	Thumbnail image.Image
}

// Step records one committed pack, in session snapshot order, for JSON
// persistence and high-res reconstruction.
type Step struct {
	Iter     int
	Strategy model.Strategy
	Option   model.PackingOption
	Rebinned bool
	NewSize  model.Rect
}

// Session wraps one engine.Session with the undo slot, option handle table,
// and step history a packing run accumulates. Every method that mutates
// Core takes the same lock a concurrent caller reading the same session id
// would need, since a session is never shared across goroutines by
// convention but the registry itself is read from many.
type Session struct {
	ID            string
	InitialFabric *model.FabricID
	Core          *engine.Session

	// FabricPaths and BinLayout are recorded at construction time (by
	// LoadBins) purely for ExportSnapshot/ReconstructHighRes; the live core
	// never consults them.
	FabricPaths map[model.FabricID]string
	BinLayout   []BinSpec

	mu       sync.Mutex
	handles  map[string]Handle
	steps    []Step
	undoCore *engine.Session
}

// New wraps core as a fresh session with no undo history and no recorded
// steps. initialFabric is recorded for the snapshot format but otherwise
// unused by the core.
func New(core *engine.Session, initialFabric *model.FabricID, fabricPaths map[model.FabricID]string, binLayout []BinSpec) *Session {
	return &Session{
		ID:            uuid.New().String()[:8],
		InitialFabric: initialFabric,
		Core:          core,
		FabricPaths:   fabricPaths,
		BinLayout:     binLayout,
		handles:       make(map[string]Handle),
	}
}

// NextPackingOptions delegates to engine.NextPackingOptions against the
// session's live core state.
func (s *Session) NextPackingOptions(ctx context.Context, binFilter bin.BinFilter, optionFilter bin.OptionFilter, rank bin.OptionRankKind, constraints bin.SolveConstraints, allowEmpty bool) ([]model.PackingOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.NextPackingOptions(ctx, s.Core, binFilter, optionFilter, rank, constraints, allowEmpty)
}

// PackWithOption snapshots the session's current state for undo, then
// commits opt via engine.PackWithOption and records the step. If
// PackWithOption fails the snapshot is discarded and the session is left
// exactly as it was.
func (s *Session) PackWithOption(opt model.PackingOption) (engine.Instruction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshotCoreLocked()
	inst, err := engine.PackWithOption(s.Core, opt)
	if err != nil {
		return engine.Instruction{}, err
	}
	s.undoCore = snapshot
	s.steps = append(s.steps, Step{Iter: inst.Iter, Strategy: s.Core.Strategy, Option: opt, NewSize: inst.NewSize})
	return inst, nil
}

// Undo restores the session to its state immediately before the most
// recent PackWithOption. Only one level of undo is kept: calling Undo twice
// in a row without an intervening PackWithOption returns ErrNoUndoAvailable
// on the second call.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undoCore == nil {
		return model.ErrNoUndoAvailable
	}
	s.Core = s.undoCore
	s.undoCore = nil
	if len(s.steps) > 0 {
		s.steps = s.steps[:len(s.steps)-1]
	}
	return nil
}

// snapshotCoreLocked deep-clones the session's arena and bins so the clone
// shares no mutable state with s.Core, which PackWithOption is about to
// mutate in place. Caller must hold s.mu.
func (s *Session) snapshotCoreLocked() *engine.Session {
	arenaClone := s.Core.Arena.Snapshot()
	return &engine.Session{
		Arena:     arenaClone,
		Bins:      s.Core.Bins.Snapshot(arenaClone),
		Composite: s.Core.Composite,
		HighRes:   s.Core.HighRes,
		Strategy:  s.Core.Strategy,
		Iter:      s.Core.Iter,
		Wasted:    s.Core.Wasted,
		Config:    s.Core.Config,
	}
}

// StoreHandle renders strip as an opaque OptionHandle the caller can later
// round-trip into Resolve, matching the in-memory-handle shape decided for
// OptionToStripImage.
func (s *Session) StoreHandle(opt model.PackingOption, strip image.Image) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := Handle{ID: uuid.New().String()[:8], Option: opt, Strip: strip}
	if strip != nil {
		h.Thumbnail = raster.Thumbnail(strip, handleThumbMax, handleThumbMax)
	}
	s.handles[h.ID] = h
	return h
}

// Resolve looks an OptionHandle id up, returning ErrHandleNotFound if the
// session never issued it.
func (s *Session) Resolve(handleID string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[handleID]
	if !ok {
		return Handle{}, model.ErrHandleNotFound
	}
	return h, nil
}

// Steps returns a copy of the committed step history, in order.
func (s *Session) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Step(nil), s.steps...)
}

// Registry is a sync.Map-backed table of live sessions keyed by id, one
// record per session: no session ever observes another's mutable state.
type Registry struct {
	sessions sync.Map // map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Put registers s under its own ID.
func (r *Registry) Put(s *Session) {
	r.sessions.Store(s.ID, s)
}

// Get looks a session up by id.
func (r *Registry) Get(id string) (*Session, error) {
	v, ok := r.sessions.Load(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return v.(*Session), nil
}

// Delete removes a session from the registry. It does not touch anything
// the session may have persisted to disk.
func (r *Registry) Delete(id string) {
	r.sessions.Delete(id)
}
