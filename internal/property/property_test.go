package property

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Kind
	}{
		{"string", "red", KindLiteral},
		{"int", 3, KindLiteral},
		{"nil", nil, KindLiteral},
		{"slice", []string{"a"}, KindLiteral},
		{"func any", func() any { return 1 }, KindComputed},
		{"func any error", func() (any, error) { return 1, nil }, KindComputed},
		{"expression", ExprFunc(func() (any, error) { return 1, nil }), KindComputed},
		{"value passthrough", Computed(ExprFunc(func() (any, error) { return 1, nil })), KindComputed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.raw).Kind())
		})
	}
}

func TestMerge_PrimaryWins(t *testing.T) {
	base := NewDefinitions(map[string]any{"color": "red", "size": 2})
	primary := NewDefinitions(map[string]any{"color": "blue"})

	merged := Merge(base, primary)
	props := Resolve(merged)

	assert.Equal(t, "blue", props["color"])
	assert.Equal(t, 2, props["size"])
	assert.NotSame(t, base, merged)
	assert.NotSame(t, primary, merged)
}

func TestMerge_EmptyPrimaryInherits(t *testing.T) {
	base := NewDefinitions(map[string]any{"color": "red"})

	props := Resolve(Merge(base, Empty()))
	assert.Equal(t, "red", props["color"])

	props = Resolve(Merge(nil, Empty()))
	assert.Empty(t, props)
}

func TestMerge_Shallow(t *testing.T) {
	base := NewDefinitions(map[string]any{"tags": map[string]any{"a": 1, "b": 2}})
	primary := NewDefinitions(map[string]any{"tags": map[string]any{"c": 3}})

	props := Resolve(Merge(base, primary))
	assert.Equal(t, map[string]any{"c": 3}, props["tags"])
}

func TestWithWithout_CopyOnWrite(t *testing.T) {
	orig := NewDefinitions(map[string]any{"color": "red"})

	changed := orig.With("color", "green")
	require.NotSame(t, orig, changed)
	v, _ := orig.Get("color")
	assert.Equal(t, "red", v.Literal())
	v, _ = changed.Get("color")
	assert.Equal(t, "green", v.Literal())

	reset := changed.Without("color")
	assert.False(t, reset.Has("color"))
	assert.True(t, changed.Has("color"))

	var none *Definitions
	assert.Equal(t, 1, none.With("x", 1).Len())
	assert.Equal(t, 0, none.Len())
	assert.Nil(t, none.Names())
}

func TestEmpty_DistinctPointers(t *testing.T) {
	assert.NotSame(t, Empty(), Empty())
}

func TestResolve_ComputedEvaluatesEveryTime(t *testing.T) {
	calls := 0
	defs := NewDefinitions(map[string]any{
		"count": func() any { calls++; return calls },
		"name":  "lamp",
	})

	props := Resolve(defs)
	assert.True(t, props.IsComputed("count"))
	assert.False(t, props.IsComputed("name"))
	assert.Equal(t, 0, calls)

	first, err := Eval[int](props["count"])
	require.NoError(t, err)
	second, err := Eval[int](props["count"])
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestEval(t *testing.T) {
	boom := errors.New("boom")

	n, err := Eval[int](float64(4))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	f, err := Eval[float64](3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	_, err = Eval[string](5)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Eval[string](nil)
	assert.ErrorIs(t, err, ErrNoValue)

	_, err = Eval[string](Getter(func() (any, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, "fallback", EvalOr[string](Getter(func() (any, error) { return nil, boom }), "fallback"))
	assert.True(t, EvalOr(Getter(func() (any, error) { return true, nil }), false))
}
