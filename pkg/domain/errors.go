package domain

import "errors"

// ErrSnapshotNotFound is returned when a session snapshot cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrSurfaceUnavailable is reported (logged, never propagated to callers) when
// the underlying rendering capability failed to become available.
var ErrSurfaceUnavailable = errors.New("render surface unavailable")
