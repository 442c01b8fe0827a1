package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// variants builds variants from alternating name/value pairs.
func variants(pairs ...any) []Variant {
	out := make([]Variant, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Variant{Name: pairs[i].(string), Value: toU64(pairs[i+1])})
	}

	return out
}

func toU64(v any) uint64 {
	switch n := v.(type) {
	case int:
		return uint64(n)
	case uint64:
		return n
	default:
		panic("unsupported discriminant literal")
	}
}

func mustDescriptor(t *testing.T, name string, width Width, vs []Variant) Descriptor {
	t.Helper()

	d, err := NewDescriptor("example/wire", name, width, spanFor(), vs)
	require.NoError(t, err)

	return d
}
