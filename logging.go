package rrule

import (
	"io"

	"github.com/rs/zerolog"
)

// log is the package-level logger. It defaults to a no-op sink so the
// library stays silent unless a caller opts in with SetLogger, mirroring
// the teacher's own silence (it never logs at all). No code in this
// package emits events through it; the policy package's RulePlus carries
// a logger of its own (RulePlus.SetLogger).
var log zerolog.Logger = zerolog.New(io.Discard)

// SetLogger replaces the package-level logger. The CLI calls this once at
// startup, at debug level when --verbose is set and disabled otherwise;
// library callers embedding this package in a service can do the same to
// route it into their own structured log sink.
func SetLogger(l zerolog.Logger) {
	log = l
}
