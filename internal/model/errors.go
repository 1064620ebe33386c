package model

import "errors"

// Sentinel errors for the packing core. Each is wrapped with context via
// fmt.Errorf("...: %w", err) at the call site, matching the wrapping
// convention used throughout internal/engine.
var (
	// ErrNoFeasibleOption means no bin yields any subset within tolerance
	// after merging; packing ends for this step.
	ErrNoFeasibleOption = errors.New("no feasible packing option")

	// ErrStrategyDone means rail-fence has reached its 12th iteration.
	ErrStrategyDone = errors.New("strategy complete")

	// ErrInvalidStrategy means an unknown strategy tag was requested.
	ErrInvalidStrategy = errors.New("invalid strategy")

	// ErrDimensionMismatch means a fabric's rotated edge does not equal the
	// selected edge length; indicates a bug upstream.
	ErrDimensionMismatch = errors.New("fabric dimension mismatch")

	// ErrBinUpdateFailure means a bulk re-bin payload referenced a fabric id
	// that does not exist in the session's fabric arena.
	ErrBinUpdateFailure = errors.New("bin update references unknown fabric")

	// ErrSolverTimeout means the subset solver exhausted its time limit
	// without a feasible solution; treated as ErrNoFeasibleOption upstream.
	ErrSolverTimeout = errors.New("solver timed out")

	// ErrSessionNotFound means a session id was not present in the registry.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoUndoAvailable means Undo was called with no snapshot on record,
	// either because the session was just created or Undo was already
	// called once since the last PackWithOption.
	ErrNoUndoAvailable = errors.New("no undo snapshot available")

	// ErrHandleNotFound means a caller round-tripped an OptionHandle id the
	// session store never issued.
	ErrHandleNotFound = errors.New("option handle not found")
)
