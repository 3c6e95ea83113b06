package nav

import (
	"context"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// DeepStateRedirect returns a RedirectFunc for parent that replays the last
// child recorded in mem. The replayed params carry
// ParamIsDeepStateRedirect=true so the child's resolve step can tell a
// replay from a fresh navigation.
//
// On a miss the redirect goes to fallback when it is non-nil; otherwise the
// parent settles.
func DeepStateRedirect(mem types.RedirectMemory, parent types.StateID, fallback *types.Redirect) types.RedirectFunc {
	return func(ctx context.Context) (types.Redirect, bool, error) {
		entry, ok, err := mem.Recall(ctx, parent)
		if err != nil {
			return types.Redirect{}, false, err
		}
		if ok {
			return types.Redirect{
				State:  entry.Child,
				Params: entry.Params.With(types.ParamIsDeepStateRedirect, true),
			}, true, nil
		}
		if fallback != nil {
			return types.Redirect{State: fallback.State, Params: fallback.Params.Clone()}, true, nil
		}
		return types.Redirect{}, false, nil
	}
}
