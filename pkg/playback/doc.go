/*
Package playback implements the traversal playback engine: a timer-driven
state machine that reveals an already-computed traversal order against a
render surface.

The Manager owns at most one live session at a time. A session moves through
Initializing → Animating → Complete (or Initializing → SkippingToFinal →
Complete in skip mode); Cancelled is reachable only by supersession or owner
teardown, never as a natural transition. Every scheduled continuation
re-checks session identity under the manager lock before touching anything,
so a continuation that fires after its session was superseded becomes a no-op.

All cadence values (initial delay, step interval, pulse, settle) are tunables
carried by Timing, and scheduling goes through a Clock port so tests can play
a whole session without real sleeps.
*/
package playback
