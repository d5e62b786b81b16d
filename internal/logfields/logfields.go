package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath          = "path"
	KeySource        = "source"
	KeyTarget        = "target"
	KeyTool          = "tool"
	KeyFramework     = "framework"
	KeyConfiguration = "configuration"
	KeyAppType       = "application_type"
	KeyRuntimeID     = "runtime_id"
	KeyBuildKey      = "build_key"
	KeyExitCode      = "exit_code"
	KeyDurationMS    = "duration_ms"
	KeyAttempt       = "attempt"
	KeyError         = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Source(s string) slog.Attr        { return slog.String(KeySource, s) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Tool(t string) slog.Attr          { return slog.String(KeyTool, t) }
func Framework(f string) slog.Attr     { return slog.String(KeyFramework, f) }
func Configuration(c string) slog.Attr { return slog.String(KeyConfiguration, c) }
func AppType(t string) slog.Attr       { return slog.String(KeyAppType, t) }
func RuntimeID(r string) slog.Attr     { return slog.String(KeyRuntimeID, r) }
func BuildKey(k string) slog.Attr      { return slog.String(KeyBuildKey, k) }
func ExitCode(c int) slog.Attr         { return slog.Int(KeyExitCode, c) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Attempt(n int) slog.Attr          { return slog.Int(KeyAttempt, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
