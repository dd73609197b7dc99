package record

// Record is the closed set of decoded STDF records. Every concrete record
// type in this package implements it, including the Unknown fallback.
type Record interface {
	Kind() Kind
}

// TestFlags is the TEST_FLG bit field shared by PTR, MPR and FTR records.
type TestFlags uint8

const (
	TestFlagAlarm         TestFlags = 0x01 // alarm detected during test
	TestFlagResultInvalid TestFlags = 0x02 // RESULT field is not valid
	TestFlagUnreliable    TestFlags = 0x04 // result is unreliable
	TestFlagTimeout       TestFlags = 0x08 // timeout occurred
	TestFlagNotExecuted   TestFlags = 0x10 // test not executed
	TestFlagAborted       TestFlags = 0x20 // test aborted
	TestFlagNoPassFail    TestFlags = 0x40 // pass/fail flag is not valid
	TestFlagFailed        TestFlags = 0x80 // test failed
)

// PassFailValid reports whether the failed bit carries meaning.
func (f TestFlags) PassFailValid() bool {
	return f&TestFlagNoPassFail == 0
}

// Failed reports the failed bit. Only meaningful when PassFailValid.
func (f TestFlags) Failed() bool {
	return f&TestFlagFailed != 0
}

// ResultValid reports whether the record's RESULT field holds a real
// measurement.
func (f TestFlags) ResultValid() bool {
	return f&TestFlagResultInvalid == 0
}

// OptFlags is the OPT_FLAG bit field of PTR, MPR and TSR records. A set
// bit marks the corresponding optional field invalid, so the all-ones
// value is the natural default when the field itself is absent.
type OptFlags uint8

const (
	OptFlagResScaleInvalid  OptFlags = 0x01
	OptFlagNoLowSpec        OptFlags = 0x04
	OptFlagNoHighSpec       OptFlags = 0x08
	OptFlagLowLimitInvalid  OptFlags = 0x10
	OptFlagHighLimitInvalid OptFlags = 0x20
	OptFlagNoLowLimit       OptFlags = 0x40
	OptFlagNoHighLimit      OptFlags = 0x80
)

// HasLowLimit reports whether the record carries a usable low limit.
func (f OptFlags) HasLowLimit() bool {
	return f&(OptFlagLowLimitInvalid|OptFlagNoLowLimit) == 0
}

// HasHighLimit reports whether the record carries a usable high limit.
func (f OptFlags) HasHighLimit() bool {
	return f&(OptFlagHighLimitInvalid|OptFlagNoHighLimit) == 0
}

// PartFlags is the PART_FLG bit field of PRR records.
type PartFlags uint8

const (
	PartFlagRetestSamePart PartFlags = 0x01
	PartFlagRetestSameBin  PartFlags = 0x02
	PartFlagAbnormalEnd    PartFlags = 0x04
	PartFlagFailed         PartFlags = 0x08
	PartFlagNoPassFail     PartFlags = 0x10
)

// Failed reports the part-failed bit. Only meaningful when the
// PartFlagNoPassFail bit is clear.
func (f PartFlags) Failed() bool {
	return f&PartFlagFailed != 0
}

// FAR is the File Attributes record (0,10), always the first record of a
// well-formed file. CPUType announces the byte order of the rest of the
// file.
type FAR struct {
	CPUType     uint8
	STDFVersion uint8
}

func (*FAR) Kind() Kind { return KindFAR }

// ATR is the Audit Trail record (0,20).
type ATR struct {
	ModTime uint32
	CmdLine string
}

func (*ATR) Kind() Kind { return KindATR }

// MIR is the Master Information record (1,10), carrying lot-level
// metadata for the whole file.
type MIR struct {
	SetupTime       uint32
	StartTime       uint32
	StationNum      uint8
	ModeCode        byte
	RetestCode      byte
	ProtectionCode  byte
	BurnInTime      uint16
	CommandModeCode byte
	LotID           string
	PartType        string
	NodeName        string
	TesterType      string
	JobName         string
	JobRevision     string
	SublotID        string
	OperatorName    string
	ExecType        string
	ExecVersion     string
	TestCode        string
	TestTemperature string
	UserText        string
	AuxFile         string
	PackageType     string
	FamilyID        string
	DateCode        string
	FacilityID      string
	FloorID         string
	ProcessID       string
	OperationFreq   string
	SpecName        string
	SpecVersion     string
	FlowID          string
	SetupID         string
	DesignRevision  string
	EngineeringID   string
	ROMCode         string
	SerialNum       string
	SupervisorName  string
}

func (*MIR) Kind() Kind { return KindMIR }

// MRR is the Master Results record (1,20), the last record of a
// well-formed file.
type MRR struct {
	FinishTime  uint32
	Disposition byte
	UserDesc    string
	ExecDesc    string
}

func (*MRR) Kind() Kind { return KindMRR }

// PCR is the Part Count record (1,30).
type PCR struct {
	HeadNum         uint8
	SiteNum         uint8
	PartCount       uint32
	RetestCount     uint32
	AbortCount      uint32
	GoodCount       uint32
	FunctionalCount uint32
}

func (*PCR) Kind() Kind { return KindPCR }

// HBR is the Hardware Bin record (1,40).
type HBR struct {
	HeadNum  uint8
	SiteNum  uint8
	BinNum   uint16
	BinCount uint32
	PassFail byte
	BinName  string
}

func (*HBR) Kind() Kind { return KindHBR }

// SBR is the Software Bin record (1,50).
type SBR struct {
	HeadNum  uint8
	SiteNum  uint8
	BinNum   uint16
	BinCount uint32
	PassFail byte
	BinName  string
}

func (*SBR) Kind() Kind { return KindSBR }

// PMR is the Pin Map record (1,60). Result records reference pins by
// Index; the names here give those indexes meaning.
type PMR struct {
	Index        uint16
	ChannelType  uint16
	ChannelName  string
	PhysicalName string
	LogicalName  string
	HeadNum      uint8
	SiteNum      uint8
}

func (*PMR) Kind() Kind { return KindPMR }

// SDR is the Site Description record (1,80).
type SDR struct {
	HeadNum       uint8
	SiteGroup     uint8
	SiteCount     uint8
	SiteNums      []uint8
	HandlerType   string
	HandlerID     string
	CardType      string
	CardID        string
	LoadboardType string
	LoadboardID   string
	DIBType       string
	DIBID         string
	CableType     string
	CableID       string
	ContactorType string
	ContactorID   string
	LaserType     string
	LaserID       string
	ExtraType     string
	ExtraID       string
}

func (*SDR) Kind() Kind { return KindSDR }

// WIR is the Wafer Information record (2,10), opening a wafer.
type WIR struct {
	HeadNum   uint8
	SiteGroup uint8
	StartTime uint32
	WaferID   string
}

func (*WIR) Kind() Kind { return KindWIR }

// WRR is the Wafer Results record (2,20), closing a wafer.
type WRR struct {
	HeadNum         uint8
	SiteGroup       uint8
	FinishTime      uint32
	PartCount       uint32
	RetestCount     uint32
	AbortCount      uint32
	GoodCount       uint32
	FunctionalCount uint32
	WaferID         string
	FabWaferID      string
	FrameID         string
	MaskID          string
	UserDesc        string
	ExecDesc        string
}

func (*WRR) Kind() Kind { return KindWRR }

// WCR is the Wafer Configuration record (2,30).
type WCR struct {
	WaferSize  float32
	DieHeight  float32
	DieWidth   float32
	WaferUnits uint8
	WaferFlat  byte
	CenterX    int16
	CenterY    int16
	PosX       byte
	PosY       byte
}

func (*WCR) Kind() Kind { return KindWCR }

// PIR is the Part Information record (5,10), opening a part on one
// head/site. Its results follow until the matching PRR.
type PIR struct {
	HeadNum uint8
	SiteNum uint8
}

func (*PIR) Kind() Kind { return KindPIR }

// PRR is the Part Results record (5,20), closing the part opened by the
// matching PIR on the same head/site.
type PRR struct {
	HeadNum  uint8
	SiteNum  uint8
	PartFlag PartFlags
	NumTests uint16
	HardBin  uint16
	SoftBin  uint16
	XCoord   int16
	YCoord   int16
	TestTime uint32
	PartID   string
	PartText string
	PartFix  []byte
}

func (*PRR) Kind() Kind { return KindPRR }

// TSR is the Test Synopsis record (10,30), declaring a test number's
// name, sequencer name, label and execution statistics.
type TSR struct {
	HeadNum     uint8
	SiteNum     uint8
	TestType    byte
	TestNum     uint32
	ExecCount   uint32
	FailCount   uint32
	AlarmCount  uint32
	TestName    string
	SeqName     string
	TestLabel   string
	OptFlag     OptFlags
	TestTime    float32
	TestMin     float32
	TestMax     float32
	TestSums    float32
	TestSquares float32
}

func (*TSR) Kind() Kind { return KindTSR }

// PTR is the Parametric Test record (15,10): one measured value for one
// test execution on one head/site. Fields from OptFlag onward are
// optional; when the payload omits them OptFlag defaults to all-invalid.
type PTR struct {
	TestNum      uint32
	HeadNum      uint8
	SiteNum      uint8
	TestFlags    TestFlags
	ParamFlags   uint8
	Result       float32
	TestText     string
	AlarmID      string
	OptFlag      OptFlags
	ResScale     int8
	LowScale     int8
	HighScale    int8
	LowLimit     float32
	HighLimit    float32
	Units        string
	ResultFormat string
	LowFormat    string
	HighFormat   string
	LowSpec      float32
	HighSpec     float32
}

func (*PTR) Kind() Kind { return KindPTR }

// MPR is the Multiple-Result Parametric Test record (15,15): one test
// execution measured across several pins.
type MPR struct {
	TestNum       uint32
	HeadNum       uint8
	SiteNum       uint8
	TestFlags     TestFlags
	ParamFlags    uint8
	ReturnCount   uint16 // j: pin states and indexes
	ResultCount   uint16 // k: measured results
	ReturnStates  []uint8
	Results       []float32
	TestText      string
	AlarmID       string
	OptFlag       OptFlags
	ResScale      int8
	LowScale      int8
	HighScale     int8
	LowLimit      float32
	HighLimit     float32
	StartInput    float32
	IncrInput     float32
	ReturnIndexes []uint16
	Units         string
	InputUnits    string
	ResultFormat  string
	LowFormat     string
	HighFormat    string
	LowSpec       float32
	HighSpec      float32
}

func (*MPR) Kind() Kind { return KindMPR }

// FTR is the Functional Test record (15,20): one pass/fail test
// execution with optional pattern diagnostics.
type FTR struct {
	TestNum       uint32
	HeadNum       uint8
	SiteNum       uint8
	TestFlags     TestFlags
	OptFlag       uint8
	CycleCount    uint32
	RelVecAddr    uint32
	RepeatCount   uint32
	FailPinCount  uint32
	XFailAddr     int32
	YFailAddr     int32
	VecOffset     int16
	ReturnCount   uint16
	ProgCount     uint16
	ReturnIndexes []uint16
	ReturnStates  []uint8
	ProgIndexes   []uint16
	ProgStates    []uint8
	FailPins      []byte
	VecName       string
	TimeSet       string
	OpCode        string
	TestText      string
	AlarmID       string
	ProgText      string
	ResultText    string
	PatGenNum     uint8
	SpinMap       []byte
}

func (*FTR) Kind() Kind { return KindFTR }

// DTR is the Datalog Text record (50,30).
type DTR struct {
	Text string
}

func (*DTR) Kind() Kind { return KindDTR }

// Unknown preserves a record whose (type, subtype) pair is outside the
// supported subset. The payload bytes are retained verbatim.
type Unknown struct {
	Type    uint8
	Subtype uint8
	Raw     []byte
}

func (*Unknown) Kind() Kind { return KindUnknown }
