/*
Package observability provides tools for monitoring and introspecting the
playback engine.

It includes Prometheus metrics for session and step throughput, and a
snapshot recorder that persists per-step progress through a SnapshotStore so
recent sessions can be inspected after the fact. Both attach to the engine
through domain.PlaybackHooks.
*/
package observability
