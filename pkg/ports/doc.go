/*
Package ports defines the driven ports (interfaces) for the Stagewalk engine.

These interfaces decouple the playback core from external implementations,
allowing the engine to drive various render surfaces and persistence backends.

# Key Interfaces

  - SurfaceProvider / SurfaceDriver: the rendering capability the engine plays against.
  - SnapshotStore: persistence of playback progress snapshots.
  - Clock: timer scheduling, abstracted so the playback cadence is testable.
*/
package ports
