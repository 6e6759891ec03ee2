/*
Package stagewalk is a playback engine that reveals graph-traversal results
step by step on a render surface, the way a debugger steps through code.

It separates the traversal data (Dataset), the pacing (Playback), and the
drawing (SurfaceDriver). The engine owns session lifecycle and timing; your
application ("Host") owns the actual rendering, whether that is a browser
canvas fed over WebSocket, a terminal, or a test double.

# Concept

A dataset carries the nodes and edges of a finished traversal plus the order
they were visited in. Playback walks that order on a timer: each node pulses
before settling, each edge fades in, and the viewport re-frames periodically
so the revealed subgraph stays visible. A session can also skip straight to
the final frame. Starting a new session supersedes the old one; the engine
guarantees the completion callback of every session fires exactly once.

# Key Features

  - Deterministic sequencing: node order first, then edge order, with
    duplicates resolved in favor of the node schedule.
  - Hexagonal architecture: the core is decoupled from surface, storage, and
    transport adapters.
  - Degraded mode: an unavailable render surface never blocks a session; the
    cadence runs silently and completion still fires.
  - Injectable clock: tests drive the full animation without real sleeps.

# Usage

Initialize the engine with a surface provider and feed it datasets:

	package main

	import (
		"fmt"

		"github.com/stagewalk/stagewalk"
		"github.com/stagewalk/stagewalk/pkg/adapters/term"
		"github.com/stagewalk/stagewalk/pkg/dataset"
	)

	func main() {
		eng := stagewalk.New(term.New())
		defer eng.Close()

		ds, err := dataset.FromFile("traversal.json")
		if err != nil {
			panic(err)
		}

		done := make(chan struct{})
		eng.Play(ds, false, func() { close(done) })
		<-done

		fmt.Println("playback finished")
	}

For long-running deployments, pkg/adapters/http exposes the same engine over
a JSON API with SSE event streaming, and pkg/adapters/mcp exposes it to agent
tooling.
*/
package stagewalk
