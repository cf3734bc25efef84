// features.go - build-time feature flag registry
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

import "sort"

// compiledFeatures tracks which optional host-driver backends and tooling
// packages were linked into this binary, registered via RegisterFeature in
// each package's init().
var compiledFeatures []string

// RegisterFeature records that an optional subpackage (a host driver, a
// debug exporter, the Lua scripting binding) was linked in. Call from an
// init() func; cmd/texcachedemo prints the resulting list with --features.
func RegisterFeature(name string) {
	compiledFeatures = append(compiledFeatures, name)
}

// Features returns the sorted list of features registered so far.
func Features() []string {
	out := make([]string, len(compiledFeatures))
	copy(out, compiledFeatures)
	sort.Strings(out)
	return out
}
