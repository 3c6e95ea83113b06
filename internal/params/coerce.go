package params

import (
	"fmt"
	"net/url"

	"github.com/spf13/cast"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// Coerce reads the InURL parameters declared in decls from a query string.
// An InURL parameter that is absent, empty or equal to its declared default
// is left out, so every activation has one canonical Params. Non-URL
// parameters are never read from the query, so a caller cannot set
// engine-internal flags through the URL; their defaults still apply.
func Coerce(decls []types.ParamDecl, query url.Values) (types.Params, error) {
	out := types.Params{}
	for _, d := range decls {
		if !d.InURL {
			if d.Default != nil {
				out[d.Name] = d.Default
			}
			continue
		}
		raw := query.Get(d.Name)
		if raw == "" {
			continue
		}
		v, err := coerceValue(d, raw)
		if err != nil {
			return nil, err
		}
		if !isDefault(d, v) {
			out[d.Name] = v
		}
	}
	return out, nil
}

// Normalize coerces programmatic params against decls with the same rules
// as Coerce. Undeclared keys and nil values are dropped.
func Normalize(decls []types.ParamDecl, p types.Params) (types.Params, error) {
	out := types.Params{}
	for _, d := range decls {
		raw, ok := p[d.Name]
		if !ok || raw == nil {
			if !d.InURL && d.Default != nil {
				out[d.Name] = d.Default
			}
			continue
		}
		v, err := coerceValue(d, raw)
		if err != nil {
			return nil, err
		}
		if d.InURL && isDefault(d, v) {
			continue
		}
		out[d.Name] = v
	}
	return out, nil
}

// isDefault reports whether v is the empty string or the declared default
// of d.
func isDefault(d types.ParamDecl, v any) bool {
	if s, ok := v.(string); ok && s == "" {
		return true
	}
	return d.Default != nil && v == d.Default
}

// Encode renders the InURL params of p as a query string. Empty values,
// values equal to the declared default, and non-URL params are omitted.
func Encode(decls []types.ParamDecl, p types.Params) url.Values {
	q := url.Values{}
	for _, d := range decls {
		if !d.InURL {
			continue
		}
		v, ok := p[d.Name]
		if !ok || v == nil || isDefault(d, v) {
			continue
		}
		q.Set(d.Name, cast.ToString(v))
	}
	return q
}

func coerceValue(d types.ParamDecl, raw any) (any, error) {
	var (
		v   any
		err error
	)
	switch d.Type {
	case types.ParamBool:
		v, err = cast.ToBoolE(raw)
	case types.ParamString, "":
		v, err = cast.ToStringE(raw)
	default:
		err = fmt.Errorf("unsupported type %q", d.Type)
	}
	if err != nil {
		return nil, &types.ParamCoercionError{Param: d.Name, Value: raw, Type: d.Type, Err: err}
	}
	return v, nil
}
