package drv2605

import "hapticcode-go/x/mathx"

// CalibrationMode selects how the device obtains its feedback calibration.
// The three strategies are mutually exclusive and chosen at Configure time.
type CalibrationMode uint8

const (
	// CalibrationOTP trusts the factory values burned into one-time
	// programmable memory. Fails if the OTP was never programmed; performs
	// no register writes.
	CalibrationOTP CalibrationMode = iota
	// CalibrationLoad replays a previously obtained LoadParams without
	// running the hardware calibration routine.
	CalibrationLoad
	// CalibrationAuto runs the on-chip auto-calibration routine. Secure the
	// motor to a mass first; it cannot converge while bouncing on a bench.
	CalibrationAuto
)

// Calibration bundles the strategy with its inputs. Load is consumed by
// CalibrationLoad; Auto (and LRA, on LRA motors) by CalibrationAuto.
type Calibration struct {
	Mode CalibrationMode
	Load LoadParams
	Auto AutoCalParams
	LRA  LRAParams
}

// LoadParams is the durable artifact of a successful auto-calibration:
// the compensation coefficient, rated back-EMF level and back-EMF amplifier
// gain. Persisting these across power cycles is the caller's responsibility;
// feed them back through CalibrationLoad to skip recalibration.
type LoadParams struct {
	Comp uint8
	BEMF uint8
	Gain uint8
}

// AutoCalParams seeds the automatic calibration routine. The Sample/Blanking/
// IDiss/ZCDet fields only matter for LRA motors. Use DefaultAutoCalParams for
// the datasheet best-fit values.
type AutoCalParams struct {
	BrakeFactor  uint8 // feedback brake/drive gain ratio, 3 bits
	LoopGain     uint8 // feedback loop gain, 2 bits
	SampleTime   uint8 // LRA auto-resonance sampling time, 2 bits
	BlankingTime uint8 // blanking before back-EMF conversion, 2 bits
	IDissTime    uint8 // current dissipation time, 2 bits
	AutoCalTime  uint8 // calibration run length, 2 bits (3 ≈ 1.0–1.2 s)
	ZCDetTime    uint8 // zero-crossing detect window, 2 bits
}

// DefaultAutoCalParams returns the general best-fit seed values from the
// datasheet.
func DefaultAutoCalParams() AutoCalParams {
	return AutoCalParams{
		BrakeFactor:  2,
		LoopGain:     2,
		SampleTime:   3,
		BlankingTime: 1,
		IDissTime:    1,
		AutoCalTime:  3,
		ZCDetTime:    0,
	}
}

// LRAParams carries the extra auto-calibration inputs an LRA needs; ERM
// motors ignore all three.
type LRAParams struct {
	RatedVoltage uint8 // closed-loop full-scale reference code
	ClampVoltage uint8 // overdrive clamp code
	DriveTime    uint8 // initial half-period guess, see LRADriveTime
}

// LRADriveTime converts an LRA resonance frequency to the 5-bit DRIVE_TIME
// code (drive time ≈ half the resonance period; code steps are 0.1 ms above
// a 0.5 ms floor).
func LRADriveTime(resonanceHz uint32) uint8 {
	if resonanceHz == 0 {
		return 0x13 // hardware default, ~205 Hz
	}
	half := mathx.RoundDiv(uint32(500_000), resonanceHz) // µs
	if half <= 500 {
		return 0
	}
	return uint8(mathx.Clamp(mathx.RoundDiv(half-500, 100), 0, 31))
}

// Register defaults for the calibration seed writes (datasheet reset values
// with the advanced fields left untouched).
const (
	feedbackDefault = 0x36 // brake 3x ratio, loop gain medium, BEMF gain 2
	ctrl1Default    = 0x93 // startup boost on, drive time 0x13
	ctrl2Default    = 0xF5 // bidirectional input, brake stabilizer on
	ctrl4Default    = 0x20 // auto-cal time 500–700 ms
)

func (d *Device) applyCalibration(c Calibration) error {
	switch c.Mode {
	case CalibrationOTP:
		programmed, err := d.otpProgrammed()
		if err != nil {
			return err
		}
		if !programmed {
			return ErrOTPNotProgrammed
		}
		return nil
	case CalibrationLoad:
		return d.loadCalibration(c.Load)
	default:
		return d.autoCalibrate(c.Auto, c.LRA)
	}
}

func (d *Device) otpProgrammed() (bool, error) {
	v, err := d.readByte(regControl4)
	if err != nil {
		return false, err
	}
	return ctrl4Reg(v).otpProgrammed(), nil
}

// loadCalibration writes previously obtained results straight into the
// calibration registers. The gain lands via read-modify-write so the
// ERM/LRA select and brake/loop fields survive.
func (d *Device) loadCalibration(p LoadParams) error {
	v, err := d.readByte(regFeedbackCtrl)
	if err != nil {
		return err
	}
	fb := feedbackReg(v)
	fb.setBEMFGain(p.Gain)
	if err := d.writeByte(regFeedbackCtrl, uint8(fb)); err != nil {
		return err
	}
	if err := d.writeByte(regAutoCalComp, p.Comp); err != nil {
		return err
	}
	return d.writeByte(regAutoCalBEMF, p.BEMF)
}

// autoCalibrate seeds the input registers, runs the on-chip routine and reads
// back the converged results.
func (d *Device) autoCalibrate(p AutoCalParams, lra LRAParams) error {
	fb := feedbackReg(feedbackDefault)
	fb.setLRAMode(d.motor == MotorLRA)
	fb.setFBBrakeFactor(p.BrakeFactor)
	fb.setLoopGain(p.LoopGain)

	c2 := ctrl2Reg(ctrl2Default)
	c2.setSampleTime(p.SampleTime)
	c2.setBlankingTime(p.BlankingTime)
	c2.setIDissTime(p.IDissTime)

	c4 := ctrl4Reg(ctrl4Default)
	c4.setAutoCalTime(p.AutoCalTime)
	c4.setZCDetTime(p.ZCDetTime)

	if err := d.writeByte(regFeedbackCtrl, uint8(fb)); err != nil {
		return err
	}
	if d.motor == MotorLRA {
		c1 := ctrl1Reg(ctrl1Default)
		c1.setDriveTime(lra.DriveTime)
		if err := d.writeByte(regRatedVoltage, lra.RatedVoltage); err != nil {
			return err
		}
		if err := d.writeByte(regOverdriveClamp, lra.ClampVoltage); err != nil {
			return err
		}
		if err := d.writeByte(regControl1, uint8(c1)); err != nil {
			return err
		}
	}
	if err := d.writeByte(regControl2, uint8(c2)); err != nil {
		return err
	}
	if err := d.writeByte(regControl4, uint8(c4)); err != nil {
		return err
	}

	if err := d.runAndCheck(ModeAutoCalibration, ErrCalibrationFailed); err != nil {
		return err
	}

	result, err := d.Calibration()
	if err != nil {
		return err
	}
	d.lastCal = result
	d.hasCal = true
	return nil
}

// Calibration reads back the values currently in the calibration registers:
// either the results of the last automatic run or whatever was loaded.
func (d *Device) Calibration() (LoadParams, error) {
	v, err := d.readByte(regFeedbackCtrl)
	if err != nil {
		return LoadParams{}, err
	}
	comp, err := d.readByte(regAutoCalComp)
	if err != nil {
		return LoadParams{}, err
	}
	bemf, err := d.readByte(regAutoCalBEMF)
	if err != nil {
		return LoadParams{}, err
	}
	return LoadParams{
		Comp: comp,
		BEMF: bemf,
		Gain: feedbackReg(v).bemfGain(),
	}, nil
}

// LastCalibration returns the result captured by the most recent automatic
// calibration on this handle, if one has run.
func (d *Device) LastCalibration() (LoadParams, bool) {
	return d.lastCal, d.hasCal
}

// RunDiagnostics drives the actuator diagnostic routine and reports whether
// the motor is present and within range.
func (d *Device) RunDiagnostics() error {
	return d.runAndCheck(ModeDiagnostics, ErrDiagnosticFailed)
}

// runAndCheck leaves standby, enters the requested routine mode, fires GO,
// waits for the hardware to finish and converts the diagnostic-result flag
// into failure.
func (d *Device) runAndCheck(mode Mode, failure error) error {
	v, err := d.readByte(regMode)
	if err != nil {
		return err
	}
	m := modeReg(v)
	m.setStandby(false)
	m.setMode(mode)
	if err := d.writeByte(regMode, uint8(m)); err != nil {
		return err
	}
	if err := d.SetGo(true); err != nil {
		return err
	}
	if err := d.waitGoClear(); err != nil {
		return err
	}
	st, err := d.ReadStatus()
	if err != nil {
		return err
	}
	if st.DiagnosticFailed {
		return failure
	}
	return nil
}
