package record

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/stdf/errs"
)

// payload builds a record body in a chosen byte order.
type payload struct {
	order binary.AppendByteOrder
	b     []byte
}

func newPayload(order binary.AppendByteOrder) *payload {
	return &payload{order: order}
}

func (p *payload) u1(v uint8) *payload {
	p.b = append(p.b, v)
	return p
}

func (p *payload) u2(v uint16) *payload {
	p.b = p.order.AppendUint16(p.b, v)
	return p
}

func (p *payload) u4(v uint32) *payload {
	p.b = p.order.AppendUint32(p.b, v)
	return p
}

func (p *payload) r4(v float32) *payload {
	p.b = p.order.AppendUint32(p.b, math.Float32bits(v))
	return p
}

func (p *payload) cn(s string) *payload {
	p.b = append(p.b, uint8(len(s)))
	p.b = append(p.b, s...)
	return p
}

// rec frames a payload with a record header. The header length field is
// little-endian no matter what byte order the body uses.
func rec(typ, sub uint8, body []byte) []byte {
	out := binary.LittleEndian.AppendUint16(nil, uint16(len(body)))
	out = append(out, typ, sub)

	return append(out, body...)
}

func farRecord(cpuType uint8) []byte {
	return rec(0, 10, []byte{cpuType, 4})
}

func decodeAll(t *testing.T, data []byte) ([]Record, *Decoder) {
	t.Helper()

	d := NewDecoder(data)
	var records []Record
	for {
		r, err := d.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		records = append(records, r)
	}

	return records, d
}

func TestDecoder_OrderAndKinds(t *testing.T) {
	le := binary.LittleEndian
	var data []byte
	data = append(data, farRecord(2)...)
	data = append(data, rec(1, 10, newPayload(le).u4(100).u4(200).u1(1).b)...)
	data = append(data, rec(5, 10, newPayload(le).u1(1).u1(1).b)...)
	data = append(data, rec(15, 10, newPayload(le).
		u4(42).u1(1).u1(1).u1(0).u1(0).r4(3.3).b)...)
	data = append(data, rec(5, 20, newPayload(le).
		u1(1).u1(1).u1(0).u2(1).u2(1).u2(1).u2(0).u2(0).u4(0).cn("P1").b)...)
	data = append(data, rec(1, 20, newPayload(le).u4(300).b)...)

	records, d := decodeAll(t, data)

	wantKinds := []Kind{KindFAR, KindMIR, KindPIR, KindPTR, KindPRR, KindMRR}
	require.Len(t, records, len(wantKinds))
	for i, kind := range wantKinds {
		require.Equal(t, kind, records[i].Kind(), "record %d", i)
	}
	require.Empty(t, d.Warnings())
	require.Zero(t, d.UnknownCount())

	ptr := records[3].(*PTR)
	require.Equal(t, uint32(42), ptr.TestNum)
	require.Equal(t, float32(3.3), ptr.Result)

	prr := records[4].(*PRR)
	require.Equal(t, "P1", prr.PartID)
}

func TestDecoder_BigEndian(t *testing.T) {
	be := binary.BigEndian
	var data []byte
	data = append(data, farRecord(1)...) // CPU_TYPE 1: Sun, big-endian
	data = append(data, rec(15, 10, newPayload(be).
		u4(0x01020304).u1(1).u1(2).u1(0).u1(0).r4(1.5).b)...)

	records, d := decodeAll(t, data)
	require.Empty(t, d.Warnings())

	ptr := records[1].(*PTR)
	require.Equal(t, uint32(0x01020304), ptr.TestNum)
	require.Equal(t, float32(1.5), ptr.Result)
}

func TestDecoder_MissingLeadingFAR(t *testing.T) {
	le := binary.LittleEndian
	data := rec(5, 10, newPayload(le).u1(1).u1(1).b)

	records, d := decodeAll(t, data)
	require.Len(t, records, 1)
	require.Equal(t, KindPIR, records[0].Kind())

	require.Len(t, d.Warnings(), 1)
	require.Equal(t, errs.WarnUnrecognizedEndianness, d.Warnings()[0].Kind)
}

func TestDecoder_LateFARDoesNotSwitchEndianness(t *testing.T) {
	le := binary.LittleEndian
	var data []byte
	data = append(data, rec(5, 10, newPayload(le).u1(1).u1(1).b)...)
	data = append(data, farRecord(1)...) // too late to latch big-endian
	data = append(data, rec(15, 10, newPayload(le).
		u4(7).u1(1).u1(1).u1(0).u1(0).r4(2.0).b)...)

	records, _ := decodeAll(t, data)
	ptr := records[2].(*PTR)
	require.Equal(t, uint32(7), ptr.TestNum)
}

func TestDecoder_UnrecognizedCPUType(t *testing.T) {
	le := binary.LittleEndian
	var data []byte
	data = append(data, farRecord(7)...)
	data = append(data, rec(15, 10, newPayload(le).
		u4(9).u1(1).u1(1).u1(0).u1(0).r4(0.5).b)...)

	records, d := decodeAll(t, data)

	require.Len(t, d.Warnings(), 1)
	require.Equal(t, errs.WarnUnrecognizedEndianness, d.Warnings()[0].Kind)

	// Fallback stays little-endian.
	ptr := records[1].(*PTR)
	require.Equal(t, uint32(9), ptr.TestNum)
}

func TestDecoder_UnknownRecord(t *testing.T) {
	var data []byte
	data = append(data, farRecord(2)...)
	data = append(data, rec(180, 20, []byte{0xde, 0xad, 0xbe, 0xef})...)
	data = append(data, rec(50, 30, newPayload(binary.LittleEndian).cn("note").b)...)

	records, d := decodeAll(t, data)
	require.Len(t, records, 3)

	unk := records[1].(*Unknown)
	require.Equal(t, uint8(180), unk.Type)
	require.Equal(t, uint8(20), unk.Subtype)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, unk.Raw)

	// The stream resynchronizes on the next header.
	require.Equal(t, "note", records[2].(*DTR).Text)

	require.Equal(t, 1, d.UnknownCount())
	require.Len(t, d.Warnings(), 1)
	require.Equal(t, errs.WarnUnknownRecord, d.Warnings()[0].Kind)
}

func TestDecoder_TruncatedPayload(t *testing.T) {
	data := append(farRecord(2), 0x10, 0x00, 15, 10, 0x01, 0x02)

	d := NewDecoder(data)
	_, err := d.Next()
	require.NoError(t, err)

	_, err = d.Next()
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestDecoder_TruncatedHeader(t *testing.T) {
	d := NewDecoder([]byte{0x08, 0x00})
	_, err := d.Next()
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestDecoder_EmptyStream(t *testing.T) {
	d := NewDecoder(nil)
	_, err := d.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoder_OptionalTrailingFields(t *testing.T) {
	le := binary.LittleEndian
	var data []byte
	data = append(data, farRecord(2)...)
	// PTR payload stops right after RESULT: everything optional is absent.
	data = append(data, rec(15, 10, newPayload(le).
		u4(11).u1(1).u1(1).u1(0).u1(0).r4(1.25).b)...)

	records, d := decodeAll(t, data)
	require.Empty(t, d.Warnings())

	ptr := records[1].(*PTR)
	require.Equal(t, float32(1.25), ptr.Result)
	require.Equal(t, "", ptr.TestText)
	require.Equal(t, OptFlags(0xff), ptr.OptFlag)
	require.False(t, ptr.OptFlag.HasLowLimit())
	require.False(t, ptr.OptFlag.HasHighLimit())
	require.Equal(t, "", ptr.Units)
}

func TestDecoder_MPRArrays(t *testing.T) {
	le := binary.LittleEndian
	body := newPayload(le).
		u4(21).u1(1).u1(1).u1(0).u1(0).
		u2(2). // RTN_ICNT
		u2(2). // RSLT_CNT
		u1(0x21).
		r4(1.0).r4(2.0).
		cn("vdd leakage").cn("").
		u1(0x00).          // OPT_FLAG: limits valid
		u1(0).u1(0).u1(0). // scales
		r4(0.5).r4(2.5).
		r4(0).r4(0).
		u2(3).u2(4). // RTN_INDX
		cn("mA").b
	data := append(farRecord(2), rec(15, 15, body)...)

	records, d := decodeAll(t, data)
	require.Empty(t, d.Warnings())

	mpr := records[1].(*MPR)
	require.Equal(t, uint16(2), mpr.ReturnCount)
	require.Equal(t, []uint8{1, 2}, mpr.ReturnStates)
	require.Equal(t, []float32{1.0, 2.0}, mpr.Results)
	require.Equal(t, "vdd leakage", mpr.TestText)
	require.True(t, mpr.OptFlag.HasLowLimit())
	require.Equal(t, float32(0.5), mpr.LowLimit)
	require.Equal(t, float32(2.5), mpr.HighLimit)
	require.Equal(t, []uint16{3, 4}, mpr.ReturnIndexes)
	require.Equal(t, "mA", mpr.Units)
}

func TestDecoder_SDRSiteList(t *testing.T) {
	le := binary.LittleEndian
	body := newPayload(le).u1(1).u1(1).u1(3).u1(1).u1(2).u1(3).cn("handler").b
	data := append(farRecord(2), rec(1, 80, body)...)

	records, _ := decodeAll(t, data)
	sdr := records[1].(*SDR)
	require.Equal(t, []uint8{1, 2, 3}, sdr.SiteNums)
	require.Equal(t, "handler", sdr.HandlerType)
}

func TestDecoder_TSRWithoutOptionalTail(t *testing.T) {
	le := binary.LittleEndian
	body := newPayload(le).
		u1(1).u1(1).u1('P').u4(42).u4(10).u4(2).u4(0).
		cn("vdd_test").b
	data := append(farRecord(2), rec(10, 30, body)...)

	records, _ := decodeAll(t, data)
	tsr := records[1].(*TSR)
	require.Equal(t, "vdd_test", tsr.TestName)
	require.Equal(t, uint32(10), tsr.ExecCount)
	require.Equal(t, OptFlags(0xff), tsr.OptFlag)
}
