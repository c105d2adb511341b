package logger

import "log/slog"

// Standard field keys for structured logging across the daemon, CLI,
// and engine packages. Use these keys consistently so log lines can be
// filtered and aggregated uniformly.
const (
	// ========================================================================
	// Device & Platform
	// ========================================================================
	KeyDevice   = "device"   // Input device identifier
	KeyPlatform = "platform" // Platform backend name (linux-evdev, windows-lli, ...)

	// ========================================================================
	// Key Events
	// ========================================================================
	KeyKey       = "key"        // KeyCode involved in the event
	KeyEventKind = "event_kind" // press or release
	KeyStateID   = "state_id"   // Modifier/lock state identifier

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeySource     = "source"      // Configuration source: file path or "defaults"
	KeyOperation  = "operation"   // Sub-operation type for complex operations

	// ========================================================================
	// Compiler & Profile
	// ========================================================================
	KeyFile    = "file"    // Source file being compiled/loaded
	KeyLine    = "line"    // Source line number for a diagnostic
	KeyProfile = "profile" // Compiled profile path
)

// Device returns a slog.Attr for an input device identifier.
func Device(id string) slog.Attr {
	return slog.String(KeyDevice, id)
}

// Platform returns a slog.Attr for the active platform backend name.
func Platform(name string) slog.Attr {
	return slog.String(KeyPlatform, name)
}

// Key returns a slog.Attr for a key code.
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// DurationMs returns a slog.Attr for duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error, or a zero Attr for nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Source returns a slog.Attr for a configuration source description.
func Source(src string) slog.Attr {
	return slog.String(KeySource, src)
}

// Operation returns a slog.Attr for a sub-operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// File returns a slog.Attr for a source file path.
func File(path string) slog.Attr {
	return slog.String(KeyFile, path)
}

// Line returns a slog.Attr for a source line number.
func Line(n int) slog.Attr {
	return slog.Int(KeyLine, n)
}

// Profile returns a slog.Attr for a compiled profile path.
func Profile(path string) slog.Attr {
	return slog.String(KeyProfile, path)
}
