package record

// decodeFunc walks a record body's fields in schema order and produces
// the typed record. Field order is fixed by the STDF V4 layout of each
// record; the fieldReader supplies absent-trailing-field defaults, so a
// decode never fails once the payload bytes are in hand.
type decodeFunc func(f *fieldReader) Record

// schemas is the static table mapping each supported record kind to its
// field schema. Kinds absent from this table decode to Unknown.
var schemas = map[Kind]decodeFunc{
	KindFAR: decodeFAR,
	KindATR: decodeATR,
	KindMIR: decodeMIR,
	KindMRR: decodeMRR,
	KindPCR: decodePCR,
	KindHBR: decodeHBR,
	KindSBR: decodeSBR,
	KindPMR: decodePMR,
	KindSDR: decodeSDR,
	KindWIR: decodeWIR,
	KindWRR: decodeWRR,
	KindWCR: decodeWCR,
	KindPIR: decodePIR,
	KindPRR: decodePRR,
	KindTSR: decodeTSR,
	KindPTR: decodePTR,
	KindMPR: decodeMPR,
	KindFTR: decodeFTR,
	KindDTR: decodeDTR,
}

func decodeFAR(f *fieldReader) Record {
	return &FAR{
		CPUType:     f.U1(),
		STDFVersion: f.U1(),
	}
}

func decodeATR(f *fieldReader) Record {
	return &ATR{
		ModTime: f.U4(),
		CmdLine: f.Cn(),
	}
}

func decodeMIR(f *fieldReader) Record {
	return &MIR{
		SetupTime:       f.U4(),
		StartTime:       f.U4(),
		StationNum:      f.U1(),
		ModeCode:        f.C1(),
		RetestCode:      f.C1(),
		ProtectionCode:  f.C1(),
		BurnInTime:      f.U2(),
		CommandModeCode: f.C1(),
		LotID:           f.Cn(),
		PartType:        f.Cn(),
		NodeName:        f.Cn(),
		TesterType:      f.Cn(),
		JobName:         f.Cn(),
		JobRevision:     f.Cn(),
		SublotID:        f.Cn(),
		OperatorName:    f.Cn(),
		ExecType:        f.Cn(),
		ExecVersion:     f.Cn(),
		TestCode:        f.Cn(),
		TestTemperature: f.Cn(),
		UserText:        f.Cn(),
		AuxFile:         f.Cn(),
		PackageType:     f.Cn(),
		FamilyID:        f.Cn(),
		DateCode:        f.Cn(),
		FacilityID:      f.Cn(),
		FloorID:         f.Cn(),
		ProcessID:       f.Cn(),
		OperationFreq:   f.Cn(),
		SpecName:        f.Cn(),
		SpecVersion:     f.Cn(),
		FlowID:          f.Cn(),
		SetupID:         f.Cn(),
		DesignRevision:  f.Cn(),
		EngineeringID:   f.Cn(),
		ROMCode:         f.Cn(),
		SerialNum:       f.Cn(),
		SupervisorName:  f.Cn(),
	}
}

func decodeMRR(f *fieldReader) Record {
	return &MRR{
		FinishTime:  f.U4(),
		Disposition: f.C1(),
		UserDesc:    f.Cn(),
		ExecDesc:    f.Cn(),
	}
}

func decodePCR(f *fieldReader) Record {
	return &PCR{
		HeadNum:         f.U1(),
		SiteNum:         f.U1(),
		PartCount:       f.U4(),
		RetestCount:     f.U4(),
		AbortCount:      f.U4(),
		GoodCount:       f.U4(),
		FunctionalCount: f.U4(),
	}
}

func decodeHBR(f *fieldReader) Record {
	return &HBR{
		HeadNum:  f.U1(),
		SiteNum:  f.U1(),
		BinNum:   f.U2(),
		BinCount: f.U4(),
		PassFail: f.C1(),
		BinName:  f.Cn(),
	}
}

func decodeSBR(f *fieldReader) Record {
	return &SBR{
		HeadNum:  f.U1(),
		SiteNum:  f.U1(),
		BinNum:   f.U2(),
		BinCount: f.U4(),
		PassFail: f.C1(),
		BinName:  f.Cn(),
	}
}

func decodePMR(f *fieldReader) Record {
	return &PMR{
		Index:        f.U2(),
		ChannelType:  f.U2(),
		ChannelName:  f.Cn(),
		PhysicalName: f.Cn(),
		LogicalName:  f.Cn(),
		HeadNum:      f.U1(),
		SiteNum:      f.U1(),
	}
}

func decodeSDR(f *fieldReader) Record {
	r := &SDR{
		HeadNum:   f.U1(),
		SiteGroup: f.U1(),
		SiteCount: f.U1(),
	}
	r.SiteNums = f.KxU1(int(r.SiteCount))
	r.HandlerType = f.Cn()
	r.HandlerID = f.Cn()
	r.CardType = f.Cn()
	r.CardID = f.Cn()
	r.LoadboardType = f.Cn()
	r.LoadboardID = f.Cn()
	r.DIBType = f.Cn()
	r.DIBID = f.Cn()
	r.CableType = f.Cn()
	r.CableID = f.Cn()
	r.ContactorType = f.Cn()
	r.ContactorID = f.Cn()
	r.LaserType = f.Cn()
	r.LaserID = f.Cn()
	r.ExtraType = f.Cn()
	r.ExtraID = f.Cn()

	return r
}

func decodeWIR(f *fieldReader) Record {
	return &WIR{
		HeadNum:   f.U1(),
		SiteGroup: f.U1(),
		StartTime: f.U4(),
		WaferID:   f.Cn(),
	}
}

func decodeWRR(f *fieldReader) Record {
	return &WRR{
		HeadNum:         f.U1(),
		SiteGroup:       f.U1(),
		FinishTime:      f.U4(),
		PartCount:       f.U4(),
		RetestCount:     f.U4(),
		AbortCount:      f.U4(),
		GoodCount:       f.U4(),
		FunctionalCount: f.U4(),
		WaferID:         f.Cn(),
		FabWaferID:      f.Cn(),
		FrameID:         f.Cn(),
		MaskID:          f.Cn(),
		UserDesc:        f.Cn(),
		ExecDesc:        f.Cn(),
	}
}

func decodeWCR(f *fieldReader) Record {
	return &WCR{
		WaferSize:  f.R4(),
		DieHeight:  f.R4(),
		DieWidth:   f.R4(),
		WaferUnits: f.U1(),
		WaferFlat:  f.C1(),
		CenterX:    f.I2(),
		CenterY:    f.I2(),
		PosX:       f.C1(),
		PosY:       f.C1(),
	}
}

func decodePIR(f *fieldReader) Record {
	return &PIR{
		HeadNum: f.U1(),
		SiteNum: f.U1(),
	}
}

func decodePRR(f *fieldReader) Record {
	return &PRR{
		HeadNum:  f.U1(),
		SiteNum:  f.U1(),
		PartFlag: PartFlags(f.U1()),
		NumTests: f.U2(),
		HardBin:  f.U2(),
		SoftBin:  f.U2(),
		XCoord:   f.I2(),
		YCoord:   f.I2(),
		TestTime: f.U4(),
		PartID:   f.Cn(),
		PartText: f.Cn(),
		PartFix:  f.Bn(),
	}
}

func decodeTSR(f *fieldReader) Record {
	return &TSR{
		HeadNum:     f.U1(),
		SiteNum:     f.U1(),
		TestType:    f.C1(),
		TestNum:     f.U4(),
		ExecCount:   f.U4(),
		FailCount:   f.U4(),
		AlarmCount:  f.U4(),
		TestName:    f.Cn(),
		SeqName:     f.Cn(),
		TestLabel:   f.Cn(),
		OptFlag:     OptFlags(f.U1Or(0xff)),
		TestTime:    f.R4(),
		TestMin:     f.R4(),
		TestMax:     f.R4(),
		TestSums:    f.R4(),
		TestSquares: f.R4(),
	}
}

func decodePTR(f *fieldReader) Record {
	return &PTR{
		TestNum:      f.U4(),
		HeadNum:      f.U1(),
		SiteNum:      f.U1(),
		TestFlags:    TestFlags(f.U1()),
		ParamFlags:   f.U1(),
		Result:       f.R4(),
		TestText:     f.Cn(),
		AlarmID:      f.Cn(),
		OptFlag:      OptFlags(f.U1Or(0xff)),
		ResScale:     f.I1(),
		LowScale:     f.I1(),
		HighScale:    f.I1(),
		LowLimit:     f.R4(),
		HighLimit:    f.R4(),
		Units:        f.Cn(),
		ResultFormat: f.Cn(),
		LowFormat:    f.Cn(),
		HighFormat:   f.Cn(),
		LowSpec:      f.R4(),
		HighSpec:     f.R4(),
	}
}

func decodeMPR(f *fieldReader) Record {
	r := &MPR{
		TestNum:     f.U4(),
		HeadNum:     f.U1(),
		SiteNum:     f.U1(),
		TestFlags:   TestFlags(f.U1()),
		ParamFlags:  f.U1(),
		ReturnCount: f.U2(),
		ResultCount: f.U2(),
	}
	r.ReturnStates = f.KxN1(int(r.ReturnCount))
	r.Results = f.KxR4(int(r.ResultCount))
	r.TestText = f.Cn()
	r.AlarmID = f.Cn()
	r.OptFlag = OptFlags(f.U1Or(0xff))
	r.ResScale = f.I1()
	r.LowScale = f.I1()
	r.HighScale = f.I1()
	r.LowLimit = f.R4()
	r.HighLimit = f.R4()
	r.StartInput = f.R4()
	r.IncrInput = f.R4()
	r.ReturnIndexes = f.KxU2(int(r.ReturnCount))
	r.Units = f.Cn()
	r.InputUnits = f.Cn()
	r.ResultFormat = f.Cn()
	r.LowFormat = f.Cn()
	r.HighFormat = f.Cn()
	r.LowSpec = f.R4()
	r.HighSpec = f.R4()

	return r
}

func decodeFTR(f *fieldReader) Record {
	r := &FTR{
		TestNum:      f.U4(),
		HeadNum:      f.U1(),
		SiteNum:      f.U1(),
		TestFlags:    TestFlags(f.U1()),
		OptFlag:      f.U1Or(0xff),
		CycleCount:   f.U4(),
		RelVecAddr:   f.U4(),
		RepeatCount:  f.U4(),
		FailPinCount: f.U4(),
		XFailAddr:    f.I4(),
		YFailAddr:    f.I4(),
		VecOffset:    f.I2(),
		ReturnCount:  f.U2(),
		ProgCount:    f.U2(),
	}
	r.ReturnIndexes = f.KxU2(int(r.ReturnCount))
	r.ReturnStates = f.KxN1(int(r.ReturnCount))
	r.ProgIndexes = f.KxU2(int(r.ProgCount))
	r.ProgStates = f.KxN1(int(r.ProgCount))
	r.FailPins = f.Dn()
	r.VecName = f.Cn()
	r.TimeSet = f.Cn()
	r.OpCode = f.Cn()
	r.TestText = f.Cn()
	r.AlarmID = f.Cn()
	r.ProgText = f.Cn()
	r.ResultText = f.Cn()
	r.PatGenNum = f.U1()
	r.SpinMap = f.Dn()

	return r
}

func decodeDTR(f *fieldReader) Record {
	return &DTR{
		Text: f.Cn(),
	}
}
