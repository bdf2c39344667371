package version

import "runtime"

var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return "dictation " + Version + " (commit=" + Commit + ", date=" + Date + ", go=" + runtime.Version() + ")"
}
