/*
Package surface wraps an externally supplied, possibly lazily-available graph
rendering capability behind a failure-absorbing adapter.

The playback engine never talks to a ports.SurfaceDriver directly. It acquires
a Handle, whose operations are idempotent and swallow every driver failure:
a load error, an unknown element or a re-framing failure is surfaced only as a
diagnostic log line and never aborts the owning session. A capability that
fails to become available degrades the handle to a silent no-op.
*/
package surface
