/*
Package domain contains the core domain models for the Stagewalk playback engine.

It defines the traversal dataset (nodes, edges, and the order a search visited
them), the playback session states, and the events emitted while a session is
being played back. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Dataset: graph nodes/edges plus the visitation order to replay.
  - SessionState: lifecycle of a single playback session.
  - Progress: the observable position of the active session.
  - PlaybackHooks: callbacks for observability (metrics, streaming, persistence).
*/
package domain
