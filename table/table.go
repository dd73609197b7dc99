// Package table flattens a finished record store into rows of typed
// columns, one row per test-execution event.
//
// The projection is a pure read-only pass over the store: PTR and FTR
// records become one row each, MPR records expand into one row per
// measured sub-result. Part ids arrive only in the PRR that closes a
// part, so rows are appended in result-record file order and patched in
// place when the closing PRR is seen.
package table

import (
	"fmt"
	"math"

	"github.com/arloliu/stdf/errs"
	"github.com/arloliu/stdf/record"
	"github.com/arloliu/stdf/store"
)

// Pass/fail status values carried by Row.PassFail.
const (
	StatusPass    = "pass"
	StatusFail    = "fail"
	StatusUnknown = "unknown"
)

// InvalidCoord is the STDF marker for an absent die coordinate.
const InvalidCoord int16 = -32768

// Row is one test-execution outcome joined against its resolved test
// identity. Every field is a scalar or a string, suitable for direct
// column typing by a tabular sink.
//
// Value, LowLimit and HighLimit are NaN when not applicable: functional
// tests measure no value, and tests may declare no limits. XCoord and
// YCoord are InvalidCoord for parts without die coordinates.
type Row struct {
	TestNum    uint32
	TestName   string
	HeadNum    uint8
	SiteNum    uint8
	PartID     string
	XCoord     int16
	YCoord     int16
	WaferID    string
	SubIndex   int // sub-result index within an MPR; 0 for scalar results
	Pin        string
	Value      float64
	PassFail   string
	LowLimit   float64
	HighLimit  float64
	Units      string
	Unresolved bool
}

// Columns returns the stable column names, in Row field order.
func Columns() []string {
	return []string{
		"test_num", "test_name", "head_num", "site_num", "part_id",
		"x_coord", "y_coord", "wafer_id", "sub_index", "pin",
		"value", "pass_fail", "low_limit", "high_limit", "units",
		"unresolved",
	}
}

// Values returns the row's column values in Columns order.
func (r Row) Values() []any {
	return []any{
		r.TestNum, r.TestName, r.HeadNum, r.SiteNum, r.PartID,
		r.XCoord, r.YCoord, r.WaferID, r.SubIndex, r.Pin,
		r.Value, r.PassFail, r.LowLimit, r.HighLimit, r.Units,
		r.Unresolved,
	}
}

type partKey struct {
	headNum uint8
	siteNum uint8
}

// builder carries the per-pass state of one projection.
type builder struct {
	st       *store.Store
	rows     []Row
	pending  map[partKey][]int // open parts: row indexes awaiting their PRR
	warnings []errs.Warning
	gaps     map[uint32]bool // test numbers already reported unresolved
	waferID  string
}

// Build projects a finished store into rows, in result-record file order.
//
// Returns:
//   - []Row: One row per PTR/FTR record and per MPR sub-result
//   - []errs.Warning: One IdentityResolutionGap warning per distinct test
//     number that no synopsis record named
func Build(st *store.Store) ([]Row, []errs.Warning) {
	b := &builder{
		st:      st,
		pending: make(map[partKey][]int),
		gaps:    make(map[uint32]bool),
	}

	for _, rec := range st.Records() {
		switch r := rec.(type) {
		case *record.WIR:
			b.waferID = r.WaferID
		case *record.WRR:
			b.waferID = ""
		case *record.PIR:
			b.pending[partKey{r.HeadNum, r.SiteNum}] = nil
		case *record.PRR:
			b.closePart(r)
		case *record.PTR:
			b.addPTR(r)
		case *record.MPR:
			b.addMPR(r)
		case *record.FTR:
			b.addFTR(r)
		}
	}

	return b.rows, b.warnings
}

// push appends a row and registers it with the open part on its
// head/site, to be patched with the part id and die coordinates when the
// PRR arrives.
func (b *builder) push(row Row) {
	row.WaferID = b.waferID
	row.XCoord = InvalidCoord
	row.YCoord = InvalidCoord
	b.rows = append(b.rows, row)

	key := partKey{row.HeadNum, row.SiteNum}
	if _, open := b.pending[key]; open {
		b.pending[key] = append(b.pending[key], len(b.rows)-1)
	}
}

func (b *builder) closePart(r *record.PRR) {
	key := partKey{r.HeadNum, r.SiteNum}
	for _, idx := range b.pending[key] {
		b.rows[idx].PartID = r.PartID
		b.rows[idx].XCoord = r.XCoord
		b.rows[idx].YCoord = r.YCoord
	}
	delete(b.pending, key)
}

// identity resolves a test's metadata, reporting a gap warning the first
// time an unnamed test number shows up.
func (b *builder) identity(testNum uint32, headNum, siteNum uint8) store.TestIdentity {
	id, resolved := b.st.ResolveIdentity(testNum, headNum, siteNum)
	if !resolved && !b.gaps[testNum] {
		b.gaps[testNum] = true
		b.warnings = append(b.warnings, errs.Warning{
			Kind:    errs.WarnIdentityGap,
			Message: fmt.Sprintf("no synopsis record names test %d", testNum),
		})
	}

	return id
}

func (b *builder) addPTR(r *record.PTR) {
	id := b.identity(r.TestNum, r.HeadNum, r.SiteNum)

	value := math.NaN()
	if r.TestFlags.ResultValid() {
		value = float64(r.Result)
	}

	low, high := recordLimits(r.OptFlag, r.LowLimit, r.HighLimit, id)

	units := r.Units
	if units == "" {
		units = id.Units
	}

	b.push(Row{
		TestNum:    r.TestNum,
		TestName:   testName(id, r.TestText),
		HeadNum:    r.HeadNum,
		SiteNum:    r.SiteNum,
		Value:      value,
		PassFail:   passFail(r.TestFlags, value, low, high),
		LowLimit:   low,
		HighLimit:  high,
		Units:      units,
		Unresolved: !id.Resolved,
	})
}

func (b *builder) addMPR(r *record.MPR) {
	id := b.identity(r.TestNum, r.HeadNum, r.SiteNum)
	low, high := recordLimits(r.OptFlag, r.LowLimit, r.HighLimit, id)

	units := r.Units
	if units == "" {
		units = id.Units
	}

	for i, result := range r.Results {
		value := math.NaN()
		if r.TestFlags.ResultValid() {
			value = float64(result)
		}

		var pin string
		if i < len(r.ReturnIndexes) {
			pin = b.st.PinName(r.ReturnIndexes[i])
		}

		b.push(Row{
			TestNum:    r.TestNum,
			TestName:   testName(id, r.TestText),
			HeadNum:    r.HeadNum,
			SiteNum:    r.SiteNum,
			SubIndex:   i,
			Pin:        pin,
			Value:      value,
			PassFail:   passFail(r.TestFlags, value, low, high),
			LowLimit:   low,
			HighLimit:  high,
			Units:      units,
			Unresolved: !id.Resolved,
		})
	}
}

func (b *builder) addFTR(r *record.FTR) {
	id := b.identity(r.TestNum, r.HeadNum, r.SiteNum)

	b.push(Row{
		TestNum:    r.TestNum,
		TestName:   testName(id, r.TestText),
		HeadNum:    r.HeadNum,
		SiteNum:    r.SiteNum,
		Value:      math.NaN(),
		PassFail:   passFail(r.TestFlags, math.NaN(), math.NaN(), math.NaN()),
		LowLimit:   math.NaN(),
		HighLimit:  math.NaN(),
		Unresolved: !id.Resolved,
	})
}

// recordLimits picks the limits attached to the result record itself when
// its optional limit fields were present, falling back to the identity's
// first-seen limits otherwise.
func recordLimits(optFlag record.OptFlags, lowLimit, highLimit float32, id store.TestIdentity) (low, high float64) {
	if optFlag == 0xff {
		return id.LowLimit, id.HighLimit
	}

	low, high = math.NaN(), math.NaN()
	if optFlag.HasLowLimit() {
		low = float64(lowLimit)
	}
	if optFlag.HasHighLimit() {
		high = float64(highLimit)
	}

	return low, high
}

// testName prefers the synopsis name, then the result record's own text.
func testName(id store.TestIdentity, testText string) string {
	if id.TestName != "" {
		return id.TestName
	}
	if testText != "" {
		return testText
	}

	return id.TestText
}

// passFail derives a row's status: the record's own pass/fail bit when
// valid, otherwise a limit comparison. Absent limits or an absent value
// yield "unknown", never a silent "pass".
func passFail(flags record.TestFlags, value, low, high float64) string {
	if flags.PassFailValid() {
		if flags.Failed() {
			return StatusFail
		}

		return StatusPass
	}

	if math.IsNaN(value) || (math.IsNaN(low) && math.IsNaN(high)) {
		return StatusUnknown
	}
	if !math.IsNaN(low) && value < low {
		return StatusFail
	}
	if !math.IsNaN(high) && value > high {
		return StatusFail
	}

	return StatusPass
}
