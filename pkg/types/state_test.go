package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateIDHierarchy(t *testing.T) {
	tests := []struct {
		name       string
		id         StateID
		ancestor   StateID
		wantParent StateID
		wantDesc   bool
	}{
		{name: "child of search", id: StateSearchResults, ancestor: StateSearch, wantParent: StateSearch, wantDesc: true},
		{name: "root has no parent", id: StateSearch, ancestor: StateSearch, wantParent: "", wantDesc: false},
		{name: "grandchild", id: "search.results.detail", ancestor: StateSearch, wantParent: StateSearchResults, wantDesc: true},
		{name: "prefix without dot is not a descendant", id: "searchable", ancestor: StateSearch, wantParent: "", wantDesc: false},
		{name: "empty ancestor", id: StateSearchResults, ancestor: "", wantParent: StateSearch, wantDesc: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantParent, tt.id.Parent())
			assert.Equal(t, tt.wantDesc, tt.id.IsDescendantOf(tt.ancestor))
		})
	}
}

func TestParamsCloneAndWith(t *testing.T) {
	p := Params{"query": "cats"}
	q := p.With(ParamIsDeepStateRedirect, true)

	assert.False(t, p.Has(ParamIsDeepStateRedirect), "With must not mutate the receiver")
	assert.True(t, q.Bool(ParamIsDeepStateRedirect))
	assert.Equal(t, "cats", q.String("query"))

	var nilParams Params
	assert.NotNil(t, nilParams.Clone())
	assert.True(t, nilParams.Equal(Params{}))
}

func TestParamsEqual(t *testing.T) {
	assert.True(t, Params{"a": "x", "b": true}.Equal(Params{"b": true, "a": "x"}))
	assert.False(t, Params{"a": "x"}.Equal(Params{"a": "y"}))
	assert.False(t, Params{"a": "x"}.Equal(Params{"b": "x"}))
	assert.False(t, Params{"a": "x"}.Equal(Params{"a": "x", "b": false}))
}

func TestParamCoercionErrorMatchesSentinel(t *testing.T) {
	err := &ParamCoercionError{Param: "nonFree", Value: "maybe", Type: ParamBool, Err: errors.New("invalid syntax")}

	assert.ErrorIs(t, err, ErrParamCoercion)
	assert.Contains(t, err.Error(), "nonFree")
	assert.Contains(t, err.Error(), "maybe")
}
