// Package params cleans and coerces navigation parameter sets.
//
// Strip removes routing-only flags before a parameter set becomes visible to
// views. Coerce and Normalize apply a state's declared parameter types and
// defaults to URL query values and programmatic params respectively.
package params

import "github.com/mesh-intelligence/searchnav/pkg/types"

// Strip returns a copy of p without any of keys, the previous value of the
// first key (in keys order) that was present, and whether one was present.
// p is never modified. Stripping an already clean set returns an equal set.
func Strip(p types.Params, keys ...string) (types.Params, any, bool) {
	out := p.Clone()

	var (
		prev  any
		found bool
	)
	for _, k := range keys {
		v, ok := out[k]
		if !ok {
			continue
		}
		if !found {
			prev, found = v, true
		}
		delete(out, k)
	}
	return out, prev, found
}

// Transient lists the keys that must never reach views or the browser URL.
var Transient = []string{types.ParamIsDeepStateRedirect}

// Sanitize strips every transient key from p and reports the prior value of
// the deep-state-redirect flag (false when absent or not a bool).
func Sanitize(p types.Params) (types.Params, bool) {
	clean, prev, _ := Strip(p, Transient...)
	replay, _ := prev.(bool)
	return clean, replay
}
