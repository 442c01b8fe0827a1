package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWidth(t *testing.T) {
	tests := []struct {
		in      string
		want    Width
		wantErr bool
	}{
		{in: "8", want: W8},
		{in: "u16", want: W16},
		{in: "uint32", want: W32},
		{in: " U64 ", want: W64},
		{in: "12", wantErr: true},
		{in: "264", wantErr: true},
		{in: "-8", wantErr: true},
		{in: "i8", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWidth(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWidth_Names(t *testing.T) {
	assert.Equal(t, "u8", W8.Scalar())
	assert.Equal(t, "uint64", W64.GoType())
	assert.Equal(t, 32, W32.Bits())
	assert.Equal(t, "u16", W16.String())
	assert.Equal(t, "Width(3)", Width(3).String())
}

func TestWidth_MaxAndFits(t *testing.T) {
	assert.Equal(t, uint64(255), W8.Max())
	assert.Equal(t, uint64(65535), W16.Max())
	assert.True(t, W8.Fits(255))
	assert.False(t, W8.Fits(256))
	assert.True(t, W64.Fits(^uint64(0)))
}

func TestWidth_Narrower(t *testing.T) {
	assert.Empty(t, W8.Narrower())
	assert.Equal(t, []Width{W8, W16}, W32.Narrower())
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "IntegerFromEnum", IntegerFromEnum.String())
	assert.Equal(t, "EnumFromInteger", EnumFromInteger.String())
	assert.Equal(t, "Capability(7)", Capability(7).String())
}
