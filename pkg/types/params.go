package types

import "reflect"

// ParamIsDeepStateRedirect is the engine-internal flag that marks an
// activation produced by replaying redirect memory. It is never part of the
// URL and never reaches views.
const ParamIsDeepStateRedirect = "isDeepStateRedirect"

// Params maps parameter names to values for a single navigation.
type Params map[string]any

// Clone returns a shallow copy of p. A nil p clones to an empty, non-nil map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// With returns a copy of p with key set to value.
func (p Params) With(key string, value any) Params {
	out := p.Clone()
	out[key] = value
	return out
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the value of key when it is a string, "" otherwise.
func (p Params) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Bool returns the value of key when it is a bool, false otherwise.
func (p Params) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Equal reports whether p and other hold the same keys and values. A nil
// Params equals an empty one.
func (p Params) Equal(other Params) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		ov, ok := other[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}
