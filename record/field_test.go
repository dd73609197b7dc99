package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/stdf/endian"
)

func TestFieldReader_ScalarFields(t *testing.T) {
	body := []byte{
		0x2a,                   // U1
		0x34, 0x12,             // U2
		0x78, 0x56, 0x34, 0x12, // U4
		0xff,                   // I1 = -1
		0x00, 0x00, 0x80, 0x3f, // R4 = 1.0
	}
	f := newFieldReader(body, endian.GetLittleEndianEngine())

	require.Equal(t, uint8(0x2a), f.U1())
	require.Equal(t, uint16(0x1234), f.U2())
	require.Equal(t, uint32(0x12345678), f.U4())
	require.Equal(t, int8(-1), f.I1())
	require.Equal(t, float32(1.0), f.R4())
	require.False(t, f.Exhausted())
}

func TestFieldReader_BigEndian(t *testing.T) {
	f := newFieldReader([]byte{0x12, 0x34}, endian.GetBigEndianEngine())
	require.Equal(t, uint16(0x1234), f.U2())
}

func TestFieldReader_Cn(t *testing.T) {
	tests := []struct {
		name      string
		body      []byte
		want      string
		exhausted bool
	}{
		{
			name: "normal string",
			body: []byte{5, 'h', 'e', 'l', 'l', 'o'},
			want: "hello",
		},
		{
			name: "empty string",
			body: []byte{0},
			want: "",
		},
		{
			name:      "absent field",
			body:      nil,
			want:      "",
			exhausted: true,
		},
		{
			name:      "length overruns body",
			body:      []byte{5, 'h', 'i'},
			want:      "",
			exhausted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFieldReader(tt.body, endian.GetLittleEndianEngine())
			require.Equal(t, tt.want, f.Cn())
			require.Equal(t, tt.exhausted, f.Exhausted())
		})
	}
}

func TestFieldReader_U1Or(t *testing.T) {
	f := newFieldReader([]byte{0x10}, endian.GetLittleEndianEngine())
	require.Equal(t, uint8(0x10), f.U1Or(0xff))
	// Body exhausted; the default takes over.
	require.Equal(t, uint8(0xff), f.U1Or(0xff))
}

func TestFieldReader_OptionalTrailingDefaults(t *testing.T) {
	// Body holds only the first two of four fields; the rest read as
	// defaults and every read after exhaustion stays a default.
	f := newFieldReader([]byte{0x01, 0x02}, endian.GetLittleEndianEngine())

	require.Equal(t, uint8(1), f.U1())
	require.Equal(t, uint8(2), f.U1())
	require.Equal(t, uint16(0), f.U2())
	require.Equal(t, float32(0), f.R4())
	require.Equal(t, "", f.Cn())
	require.True(t, f.Exhausted())
}

func TestFieldReader_PartialMultiByteField(t *testing.T) {
	// One stray byte cannot satisfy a U2; the field is absent, not split.
	f := newFieldReader([]byte{0xaa}, endian.GetLittleEndianEngine())
	require.Equal(t, uint16(0), f.U2())
	require.True(t, f.Exhausted())
}

func TestFieldReader_Bn(t *testing.T) {
	f := newFieldReader([]byte{3, 0xaa, 0xbb, 0xcc}, endian.GetLittleEndianEngine())
	require.Equal(t, []byte{0xaa, 0xbb, 0xcc}, f.Bn())

	f = newFieldReader([]byte{3, 0xaa}, endian.GetLittleEndianEngine())
	require.Nil(t, f.Bn())
	require.True(t, f.Exhausted())
}

func TestFieldReader_Dn(t *testing.T) {
	// 12 bits round up to 2 packed bytes.
	f := newFieldReader([]byte{0x0c, 0x00, 0xf0, 0x0f}, endian.GetLittleEndianEngine())
	require.Equal(t, []byte{0xf0, 0x0f}, f.Dn())
}

func TestFieldReader_KxN1(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		k    int
		want []uint8
	}{
		{
			name: "even count",
			body: []byte{0x21, 0x43},
			k:    4,
			want: []uint8{1, 2, 3, 4},
		},
		{
			name: "odd count drops the padding nibble",
			body: []byte{0x21, 0x03},
			k:    3,
			want: []uint8{1, 2, 3},
		},
		{
			name: "zero count",
			body: nil,
			k:    0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFieldReader(tt.body, endian.GetLittleEndianEngine())
			require.Equal(t, tt.want, f.KxN1(tt.k))
		})
	}
}

func TestFieldReader_KxU2(t *testing.T) {
	f := newFieldReader([]byte{0x01, 0x00, 0x02, 0x00}, endian.GetLittleEndianEngine())
	require.Equal(t, []uint16{1, 2}, f.KxU2(2))
}

func TestFieldReader_KxR4(t *testing.T) {
	f := newFieldReader([]byte{
		0x00, 0x00, 0x80, 0x3f,
		0x00, 0x00, 0x00, 0x40,
	}, endian.GetLittleEndianEngine())
	require.Equal(t, []float32{1.0, 2.0}, f.KxR4(2))
}
