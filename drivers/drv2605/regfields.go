package drv2605

// Byte overlays for the bit-packed control registers. Each overlay keeps the
// raw byte private and exposes masked accessors, so a read-modify-write can
// never disturb the neighbouring fields by accident.

func setBit(v uint8, mask uint8, on bool) uint8 {
	if on {
		return v | mask
	}
	return v &^ mask
}

func setField(v uint8, shift, width, val uint8) uint8 {
	mask := uint8(1<<width-1) << shift
	return (v &^ mask) | (val << shift & mask)
}

func field(v uint8, shift, width uint8) uint8 {
	return (v >> shift) & (1<<width - 1)
}

// ---- Status (0x00) ----

type statusReg uint8

const (
	statusOCDetect   = 1 << 0
	statusOverTemp   = 1 << 1
	statusFBTimeout  = 1 << 2
	statusDiagResult = 1 << 3
)

func (r statusReg) ocDetected() bool       { return uint8(r)&statusOCDetect != 0 }
func (r statusReg) overTemp() bool         { return uint8(r)&statusOverTemp != 0 }
func (r statusReg) feedbackTimedOut() bool { return uint8(r)&statusFBTimeout != 0 }
func (r statusReg) diagnosticResult() bool { return uint8(r)&statusDiagResult != 0 }
func (r statusReg) deviceID() uint8        { return field(uint8(r), 5, 3) }

// ---- Mode (0x01) ----

type modeReg uint8

func (r modeReg) devReset() bool { return uint8(r)&0x80 != 0 }
func (r modeReg) standby() bool  { return uint8(r)&0x40 != 0 }
func (r modeReg) mode() Mode     { return Mode(field(uint8(r), 0, 3)) }

func (r *modeReg) setDevReset(on bool) { *r = modeReg(setBit(uint8(*r), 0x80, on)) }
func (r *modeReg) setStandby(on bool)  { *r = modeReg(setBit(uint8(*r), 0x40, on)) }
func (r *modeReg) setMode(m Mode)      { *r = modeReg(setField(uint8(*r), 0, 3, uint8(m))) }

// ---- Register3 / library selection (0x03) ----

type register3 uint8

func (r register3) hiZ() bool        { return uint8(r)&0x10 != 0 }
func (r register3) library() Library { return Library(field(uint8(r), 0, 3)) }

func (r *register3) setHiZ(on bool)       { *r = register3(setBit(uint8(*r), 0x10, on)) }
func (r *register3) setLibrary(l Library) { *r = register3(setField(uint8(*r), 0, 3, uint8(l))) }

// ---- Go (0x0C) ----

type goReg uint8

func (r goReg) goBit() bool       { return uint8(r)&0x01 != 0 }
func (r *goReg) setGoBit(on bool) { *r = goReg(setBit(uint8(*r), 0x01, on)) }

// ---- Feedback control (0x1A) ----

type feedbackReg uint8

func (r feedbackReg) lraMode() bool         { return uint8(r)&0x80 != 0 }
func (r feedbackReg) fbBrakeFactor() uint8  { return field(uint8(r), 4, 3) }
func (r feedbackReg) loopGain() uint8       { return field(uint8(r), 2, 2) }
func (r feedbackReg) bemfGain() uint8       { return field(uint8(r), 0, 2) }

func (r *feedbackReg) setLRAMode(on bool)        { *r = feedbackReg(setBit(uint8(*r), 0x80, on)) }
func (r *feedbackReg) setFBBrakeFactor(v uint8)  { *r = feedbackReg(setField(uint8(*r), 4, 3, v)) }
func (r *feedbackReg) setLoopGain(v uint8)       { *r = feedbackReg(setField(uint8(*r), 2, 2, v)) }
func (r *feedbackReg) setBEMFGain(v uint8)       { *r = feedbackReg(setField(uint8(*r), 0, 2, v)) }

// ---- Control1 (0x1B) ----

type ctrl1Reg uint8

func (r ctrl1Reg) driveTime() uint8 { return field(uint8(r), 0, 5) }

func (r *ctrl1Reg) setStartupBoost(on bool) { *r = ctrl1Reg(setBit(uint8(*r), 0x80, on)) }
func (r *ctrl1Reg) setACCouple(on bool)     { *r = ctrl1Reg(setBit(uint8(*r), 0x20, on)) }
func (r *ctrl1Reg) setDriveTime(v uint8)    { *r = ctrl1Reg(setField(uint8(*r), 0, 5, v)) }

// ---- Control2 (0x1C) ----

type ctrl2Reg uint8

func (r *ctrl2Reg) setBidirInput(on bool)      { *r = ctrl2Reg(setBit(uint8(*r), 0x80, on)) }
func (r *ctrl2Reg) setBrakeStabilizer(on bool) { *r = ctrl2Reg(setBit(uint8(*r), 0x40, on)) }
func (r *ctrl2Reg) setSampleTime(v uint8)      { *r = ctrl2Reg(setField(uint8(*r), 4, 2, v)) }
func (r *ctrl2Reg) setBlankingTime(v uint8)    { *r = ctrl2Reg(setField(uint8(*r), 2, 2, v)) }
func (r *ctrl2Reg) setIDissTime(v uint8)       { *r = ctrl2Reg(setField(uint8(*r), 0, 2, v)) }

// ---- Control3 (0x1D) ----

type ctrl3Reg uint8

func (r ctrl3Reg) ermOpenLoop() bool   { return uint8(r)&0x20 != 0 }
func (r ctrl3Reg) dataFormatRTP() bool { return uint8(r)&0x08 != 0 }
func (r ctrl3Reg) pwmAnalog() bool     { return uint8(r)&0x02 != 0 }
func (r ctrl3Reg) lraOpenLoop() bool   { return uint8(r)&0x01 != 0 }

func (r *ctrl3Reg) setNGThresh(v uint8)       { *r = ctrl3Reg(setField(uint8(*r), 6, 2, v)) }
func (r *ctrl3Reg) setERMOpenLoop(on bool)    { *r = ctrl3Reg(setBit(uint8(*r), 0x20, on)) }
func (r *ctrl3Reg) setDataFormatRTP(on bool)  { *r = ctrl3Reg(setBit(uint8(*r), 0x08, on)) }
func (r *ctrl3Reg) setPWMAnalog(analog bool)  { *r = ctrl3Reg(setBit(uint8(*r), 0x02, analog)) }
func (r *ctrl3Reg) setLRAOpenLoop(on bool)    { *r = ctrl3Reg(setBit(uint8(*r), 0x01, on)) }

// ---- Control4 (0x1E) ----

type ctrl4Reg uint8

func (r ctrl4Reg) otpProgrammed() bool { return uint8(r)&0x04 != 0 }

func (r *ctrl4Reg) setZCDetTime(v uint8)   { *r = ctrl4Reg(setField(uint8(*r), 6, 2, v)) }
func (r *ctrl4Reg) setAutoCalTime(v uint8) { *r = ctrl4Reg(setField(uint8(*r), 4, 2, v)) }
