// Package invariant handles broken simulation invariants and collaborator
// contract violations.
//
// Builds tagged simdebug abort on the first violation. Release builds log a
// warning and let the caller clamp the offending value.
package invariant

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "invariant")

// Check returns ok. When ok is false the violation is reported: strict
// builds panic, release builds log it.
func Check(ok bool, format string, args ...interface{}) bool {
	if ok {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if strict {
		panic("invariant violated: " + msg)
	}
	log.Warn("invariant violated: " + msg)
	return false
}

// Once reports each key a single time. It is used for missing assets, which
// are logged on first use and then silently substituted.
type Once struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// Report logs msg the first time key is seen and returns whether it did.
func (o *Once) Report(key, msg string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	if _, ok := o.seen[key]; ok {
		return false
	}
	o.seen[key] = struct{}{}
	log.WithField("key", key).Warn(msg)
	return true
}
