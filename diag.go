// diag.go - de-duplicated diagnostic output
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import (
	"fmt"
	"os"
)

// diagnostics gates repeated warnings so a storm of identical per-frame
// failures (e.g. the same unknown texture format every draw) produces one line
// instead of thousands. Matches §7's "log once" requirement.
type diagnostics struct {
	seen map[string]bool
}

func newDiagnostics() *diagnostics {
	return &diagnostics{seen: make(map[string]bool)}
}

func (d *diagnostics) warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "texcache: "+format+"\n", args...)
}

func (d *diagnostics) warnOnce(key, format string, args ...interface{}) {
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.warn(format, args...)
}
