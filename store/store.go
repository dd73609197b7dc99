// Package store accumulates decoded records in file order and resolves
// the cross-record relationships a flat record stream only implies:
// test number to test name and limits, pin index to pin name, WIR to WRR
// pairing, and bin numbers to bin metadata.
//
// A Store is filled once by a single decode pass, finalized with Finish,
// and read-only afterwards. All post-Finish accessors are pure reads, so
// any number of table-building passes may run concurrently over the same
// completed Store.
package store

import (
	"math"

	"github.com/arloliu/stdf/record"
)

// mergedHeads is the TSR HEAD_NUM value meaning "summary over all heads".
// Such synopsis records describe no single site and are excluded from the
// per-site identity index.
const mergedHeads = 255

// TestIdentity is the resolved metadata for one test number: the
// human-readable name declared by a TSR and the limit/unit metadata
// carried by the first result record seen for that test.
//
// LowLimit and HighLimit are NaN when the test declares no such limit.
// Resolved reports whether a synopsis record named the test; unresolved
// identities still carry whatever limit metadata the result records
// supplied.
type TestIdentity struct {
	TestNum   uint32
	TestType  byte // 'P', 'F', 'M', 'S' or 0 when never declared
	TestName  string
	SeqName   string
	TestLabel string
	TestText  string
	Units     string
	LowLimit  float64
	HighLimit float64
	ExecCount uint32
	Resolved  bool
}

type identityKey struct {
	testNum uint32
	headNum uint8
	siteNum uint8
}

// testInfo tracks which halves of an identity have been filled in.
// A complete identity needs a TSR (name) and one result record (limits).
type testInfo struct {
	id        TestIdentity
	nameSet   bool
	limitsSet bool
}

// Store holds all records of one decoded file in file order, grouped by
// kind, plus the resolved cross-record indexes.
type Store struct {
	records []record.Record
	byKind  map[record.Kind][]record.Record

	identities map[identityKey]*testInfo
	merged     map[uint32]*testInfo
	pins       map[uint16]*record.PMR
	finished   bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		byKind:     make(map[record.Kind][]record.Record),
		identities: make(map[identityKey]*testInfo),
		merged:     make(map[uint32]*testInfo),
		pins:       make(map[uint16]*record.PMR),
	}
}

// Add appends one decoded record, preserving file order.
func (s *Store) Add(rec record.Record) {
	s.records = append(s.records, rec)
	kind := rec.Kind()
	s.byKind[kind] = append(s.byKind[kind], rec)
}

// Finish builds the cross-record indexes from the accumulated records.
// Must be called once, after the last Add and before any resolution.
func (s *Store) Finish() {
	if s.finished {
		return
	}
	s.finished = true

	for _, rec := range s.records {
		switch r := rec.(type) {
		case *record.TSR:
			s.indexTSR(r)
		case *record.PTR:
			s.indexResult(r.TestNum, r.HeadNum, r.SiteNum, r.TestText, r.Units,
				r.OptFlag, r.LowLimit, r.HighLimit)
		case *record.MPR:
			s.indexResult(r.TestNum, r.HeadNum, r.SiteNum, r.TestText, r.Units,
				r.OptFlag, r.LowLimit, r.HighLimit)
		case *record.FTR:
			s.indexResult(r.TestNum, r.HeadNum, r.SiteNum, r.TestText, "",
				record.OptFlags(0xff), 0, 0)
		case *record.PMR:
			if _, exists := s.pins[r.Index]; !exists {
				s.pins[r.Index] = r
			}
		}
	}
}

func (s *Store) info(key identityKey) *testInfo {
	ti, ok := s.identities[key]
	if !ok {
		ti = &testInfo{id: TestIdentity{
			TestNum:   key.testNum,
			LowLimit:  math.NaN(),
			HighLimit: math.NaN(),
		}}
		s.identities[key] = ti
	}

	return ti
}

func (s *Store) mergedInfo(testNum uint32) *testInfo {
	ti, ok := s.merged[testNum]
	if !ok {
		ti = &testInfo{id: TestIdentity{
			TestNum:   testNum,
			LowLimit:  math.NaN(),
			HighLimit: math.NaN(),
		}}
		s.merged[testNum] = ti
	}

	return ti
}

func (s *Store) indexTSR(r *record.TSR) {
	if r.HeadNum != mergedHeads {
		applyTSR(s.info(identityKey{r.TestNum, r.HeadNum, r.SiteNum}), r)
	}
	applyTSR(s.mergedInfo(r.TestNum), r)
}

// applyTSR fills the synopsis half of an identity, first-seen wins.
func applyTSR(ti *testInfo, r *record.TSR) {
	if ti.nameSet {
		// STDF allows a test's metadata to be declared once and implied
		// thereafter; later declarations only grow the execution count.
		ti.id.ExecCount += r.ExecCount
		return
	}
	ti.nameSet = true
	ti.id.Resolved = true
	ti.id.TestType = r.TestType
	ti.id.TestName = r.TestName
	ti.id.SeqName = r.SeqName
	ti.id.TestLabel = r.TestLabel
	ti.id.ExecCount = r.ExecCount
}

func (s *Store) indexResult(testNum uint32, headNum, siteNum uint8, text, units string,
	optFlag record.OptFlags, lowLimit, highLimit float32,
) {
	applyResult(s.info(identityKey{testNum, headNum, siteNum}), text, units, optFlag, lowLimit, highLimit)
	applyResult(s.mergedInfo(testNum), text, units, optFlag, lowLimit, highLimit)
}

// applyResult fills the limit half of an identity from the first result
// record whose optional limit fields were present.
func applyResult(ti *testInfo, text, units string, optFlag record.OptFlags, lowLimit, highLimit float32) {
	if ti.id.TestText == "" {
		ti.id.TestText = text
	}
	if ti.limitsSet || optFlag == 0xff {
		return
	}
	ti.limitsSet = true
	if optFlag.HasLowLimit() {
		ti.id.LowLimit = float64(lowLimit)
	}
	if optFlag.HasHighLimit() {
		ti.id.HighLimit = float64(highLimit)
	}
	if ti.id.Units == "" {
		ti.id.Units = units
	}
}

// ResolveIdentity returns the identity for a test number as executed on
// one head/site. It falls back to the merged per-test-number identity
// when the exact (test, head, site) triple was never declared, and to an
// unresolved placeholder when the test number is entirely unknown.
//
// Idempotent: resolution is a pure read over the finished indexes.
func (s *Store) ResolveIdentity(testNum uint32, headNum, siteNum uint8) (TestIdentity, bool) {
	if ti, ok := s.identities[identityKey{testNum, headNum, siteNum}]; ok && ti.nameSet {
		return ti.id, true
	}
	if ti, ok := s.merged[testNum]; ok {
		return ti.id, ti.nameSet
	}

	return TestIdentity{
		TestNum:   testNum,
		LowLimit:  math.NaN(),
		HighLimit: math.NaN(),
	}, false
}

// Records returns all records in file order.
func (s *Store) Records() []record.Record {
	return s.records
}

// Kind returns the records of one kind in file order.
func (s *Store) Kind(k record.Kind) []record.Record {
	return s.byKind[k]
}

// Len returns the total record count, Unknown records included.
func (s *Store) Len() int {
	return len(s.records)
}

// Summary returns the record count per kind.
func (s *Store) Summary() map[record.Kind]int {
	counts := make(map[record.Kind]int, len(s.byKind))
	for kind, recs := range s.byKind {
		counts[kind] = len(recs)
	}

	return counts
}

// PinName resolves a pin map index to its most descriptive name,
// preferring the logical name, then the physical name, then the channel
// name. Returns "" for unmapped indexes.
func (s *Store) PinName(index uint16) string {
	pmr, ok := s.pins[index]
	if !ok {
		return ""
	}
	switch {
	case pmr.LogicalName != "":
		return pmr.LogicalName
	case pmr.PhysicalName != "":
		return pmr.PhysicalName
	default:
		return pmr.ChannelName
	}
}

// Pins returns the pin map records keyed by pin index.
func (s *Store) Pins() map[uint16]*record.PMR {
	return s.pins
}

// SoftBins returns the software bin records keyed by bin number.
func (s *Store) SoftBins() map[uint16]*record.SBR {
	bins := make(map[uint16]*record.SBR)
	for _, rec := range s.byKind[record.KindSBR] {
		sbr := rec.(*record.SBR)
		bins[sbr.BinNum] = sbr
	}

	return bins
}

// HardBins returns the hardware bin records keyed by bin number.
func (s *Store) HardBins() map[uint16]*record.HBR {
	bins := make(map[uint16]*record.HBR)
	for _, rec := range s.byKind[record.KindHBR] {
		hbr := rec.(*record.HBR)
		bins[hbr.BinNum] = hbr
	}

	return bins
}

// Master returns the file's master information and master results
// records, either of which may be nil for incomplete files.
func (s *Store) Master() (*record.MIR, *record.MRR) {
	var mir *record.MIR
	var mrr *record.MRR
	if recs := s.byKind[record.KindMIR]; len(recs) > 0 {
		mir = recs[0].(*record.MIR)
	}
	if recs := s.byKind[record.KindMRR]; len(recs) > 0 {
		mrr = recs[0].(*record.MRR)
	}

	return mir, mrr
}

// WaferInfo pairs a wafer's opening WIR with its closing WRR.
type WaferInfo struct {
	Start  *record.WIR
	Finish *record.WRR // nil when the wafer was never closed
}

// Wafers pairs WIR and WRR records in file order.
func (s *Store) Wafers() []WaferInfo {
	wirs := s.byKind[record.KindWIR]
	wrrs := s.byKind[record.KindWRR]

	wafers := make([]WaferInfo, 0, len(wirs))
	for i, rec := range wirs {
		info := WaferInfo{Start: rec.(*record.WIR)}
		if i < len(wrrs) {
			info.Finish = wrrs[i].(*record.WRR)
		}
		wafers = append(wafers, info)
	}

	return wafers
}

// Of returns all records of the concrete type T in file order.
func Of[T record.Record](s *Store) []T {
	var out []T
	for _, rec := range s.records {
		if v, ok := rec.(T); ok {
			out = append(out, v)
		}
	}

	return out
}
