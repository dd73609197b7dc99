// Package record implements the STDF record layer: the 4-byte record
// header, the typed record structs for the supported subset of STDF V4,
// the per-record field schemas, and the Decoder that turns a byte stream
// into a sequence of records.
//
// Records are decoded exactly once and are immutable afterwards. Types
// outside the supported subset are preserved verbatim as Unknown records
// so that no input bytes are silently dropped.
package record

// Kind identifies a record schema. It is the decoded form of the
// (record type, record subtype) pair carried by every record header.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFAR          // File Attributes
	KindATR          // Audit Trail
	KindMIR          // Master Information
	KindMRR          // Master Results
	KindPCR          // Part Count
	KindHBR          // Hardware Bin
	KindSBR          // Software Bin
	KindPMR          // Pin Map
	KindSDR          // Site Description
	KindWIR          // Wafer Information
	KindWRR          // Wafer Results
	KindWCR          // Wafer Configuration
	KindPIR          // Part Information
	KindPRR          // Part Results
	KindTSR          // Test Synopsis
	KindPTR          // Parametric Test
	KindMPR          // Multiple-Result Parametric Test
	KindFTR          // Functional Test
	KindDTR          // Datalog Text
)

// KindOf maps a header's (type, subtype) pair to a Kind. Pairs outside
// the supported subset map to KindUnknown.
func KindOf(typ, sub uint8) Kind {
	switch typ {
	case 0:
		if sub == 10 {
			return KindFAR
		}
		if sub == 20 {
			return KindATR
		}
	case 1:
		switch sub {
		case 10:
			return KindMIR
		case 20:
			return KindMRR
		case 30:
			return KindPCR
		case 40:
			return KindHBR
		case 50:
			return KindSBR
		case 60:
			return KindPMR
		case 80:
			return KindSDR
		}
	case 2:
		switch sub {
		case 10:
			return KindWIR
		case 20:
			return KindWRR
		case 30:
			return KindWCR
		}
	case 5:
		switch sub {
		case 10:
			return KindPIR
		case 20:
			return KindPRR
		}
	case 10:
		if sub == 30 {
			return KindTSR
		}
	case 15:
		switch sub {
		case 10:
			return KindPTR
		case 15:
			return KindMPR
		case 20:
			return KindFTR
		}
	case 50:
		if sub == 30 {
			return KindDTR
		}
	}

	return KindUnknown
}

var kindNames = map[Kind]string{
	KindUnknown: "Unknown",
	KindFAR:     "FAR",
	KindATR:     "ATR",
	KindMIR:     "MIR",
	KindMRR:     "MRR",
	KindPCR:     "PCR",
	KindHBR:     "HBR",
	KindSBR:     "SBR",
	KindPMR:     "PMR",
	KindSDR:     "SDR",
	KindWIR:     "WIR",
	KindWRR:     "WRR",
	KindWCR:     "WCR",
	KindPIR:     "PIR",
	KindPRR:     "PRR",
	KindTSR:     "TSR",
	KindPTR:     "PTR",
	KindMPR:     "MPR",
	KindFTR:     "FTR",
	KindDTR:     "DTR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}
