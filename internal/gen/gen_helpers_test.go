package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"enumarg-generator/internal/enum"
	"enumarg-generator/internal/source"
)

// validated builds and validates an enum from alternating name/value pairs.
func validated(t *testing.T, name string, w enum.Width, pairs ...any) *enum.Validated {
	t.Helper()

	var vs []enum.Variant
	for i := 0; i+1 < len(pairs); i += 2 {
		vs = append(vs, enum.Variant{Name: pairs[i].(string), Value: uint64(pairs[i+1].(int))})
	}

	d, err := enum.NewDescriptor("example/wire", name, w, source.Span{}, vs)
	require.NoError(t, err)

	v, failures := enum.Validate(d)
	require.Empty(t, failures)
	require.NotNil(t, v)

	return v
}
