// Package drv2605 provides a TinyGo-friendly driver for the DRV2605L haptic
// motor controller (ERM and LRA actuators).
//
// Design notes (datasheet references):
// • I2C, 8-bit registers, fixed 7-bit address 0x5A shared by the whole family
//   (broadcast writes can run several actuators in sync).
// • Construction flow: identity check → calibration (OTP / load / automatic)
//   → software standby for power saving.
// • Playback: pick an operating mode, load up to eight waveform-sequencer
//   slots, assert GO; the hardware clears GO when the sequence finishes.
// • All GO waits are bounded; a disconnected actuator surfaces as ErrTimeout
//   instead of hanging the caller.
//
// The driver is synchronous and single-owner: register read-modify-write
// cycles span two bus transactions, so concurrent access to one chip must be
// serialised by the caller.
package drv2605

import (
	"time"

	"tinygo.org/x/drivers"
)

// MotorType selects the actuator class the chip is driving. It is fixed at
// construction; open-loop control bits differ between the two classes and the
// driver dispatches on this tag, never on a value read back from the device.
type MotorType uint8

const (
	MotorERM MotorType = iota // eccentric rotating mass
	MotorLRA                  // linear resonant actuator
)

// Config controls construction-time behaviour. The zero value selects
// factory (OTP) calibration with default polling budgets.
type Config struct {
	Calibration Calibration

	// PollInterval spaces the GO-bit polls. Default 1 ms.
	PollInterval time.Duration
	// Timeout bounds every GO/DEV_RESET wait. The longest hardware run is a
	// worst-case auto-calibration at about 1.2 s; default 2 s.
	Timeout time.Duration
}

// Device is a handle to one DRV2605L. It owns the transport exclusively.
type Device struct {
	bus   drivers.I2C
	motor MotorType

	poll    time.Duration
	timeout time.Duration

	lastCal LoadParams
	hasCal  bool

	// Fixed buffers to avoid per-call heap allocations.
	w [10]byte
	r [1]byte
}

// New creates a handle bound to bus and motor type. It performs no bus
// traffic; call Configure before use.
func New(bus drivers.I2C, motor MotorType) *Device {
	return &Device{
		bus:     bus,
		motor:   motor,
		poll:    time.Millisecond,
		timeout: 2 * time.Second,
	}
}

// Motor returns the motor type the handle was constructed with.
func (d *Device) Motor() MotorType { return d.motor }

// Configure brings the device to a known calibrated state: it verifies the
// device identity, applies the configured calibration strategy and leaves the
// chip in standby. On an early failure the chip may be left mid-configuration;
// the driver does not attempt recovery.
func (d *Device) Configure(cfg Config) error {
	if cfg.PollInterval > 0 {
		d.poll = cfg.PollInterval
	}
	if cfg.Timeout > 0 {
		d.timeout = cfg.Timeout
	}

	if err := d.VerifyIdentity(); err != nil {
		return err
	}
	if err := d.applyCalibration(cfg.Calibration); err != nil {
		return err
	}
	return d.SetStandby(true)
}

// VerifyIdentity reads the status register and checks the device-id field
// against the DRV2605L part code.
func (d *Device) VerifyIdentity() error {
	v, err := d.readByte(regStatus)
	if err != nil {
		return err
	}
	if statusReg(v).deviceID() != deviceID {
		return ErrWrongDeviceID
	}
	return nil
}

// Status is the decoded status register. The flag bits latch in hardware and
// clear on read, so every call reflects activity since the previous call;
// nothing is cached driver-side.
type Status struct {
	// OverCurrent latches when load impedance fell below the shutdown
	// threshold.
	OverCurrent bool
	// OverTemp latches when the die overheated and the output shut down.
	OverTemp bool
	// FeedbackTimedOut reports the feedback controller losing its reference
	// (ERM back-EMF at zero, or LRA frequency lock lost). Debug only.
	FeedbackTimedOut bool
	// DiagnosticFailed holds the result of the last diagnostic or
	// auto-calibration run; valid only after GO has self-cleared.
	DiagnosticFailed bool
	// DeviceID is the 3-bit part code (7 = DRV2605L).
	DeviceID uint8
}

// ReadStatus reads and decodes the status register.
func (d *Device) ReadStatus() (Status, error) {
	v, err := d.readByte(regStatus)
	if err != nil {
		return Status{}, err
	}
	r := statusReg(v)
	return Status{
		OverCurrent:      r.ocDetected(),
		OverTemp:         r.overTemp(),
		FeedbackTimedOut: r.feedbackTimedOut(),
		DiagnosticFailed: r.diagnosticResult(),
		DeviceID:         r.deviceID(),
	}, nil
}

// SetStandby enters or leaves the low-power software standby. Mode selection
// and all configuration survive standby; only the output stage powers down.
func (d *Device) SetStandby(enable bool) error {
	v, err := d.readByte(regMode)
	if err != nil {
		return err
	}
	m := modeReg(v)
	m.setStandby(enable)
	return d.writeByte(regMode, uint8(m))
}

// Reset performs the equivalent of a power cycle: playback stops immediately
// and every register returns to its default. The wait for the self-clearing
// reset bit is bounded by the configured timeout.
func (d *Device) Reset() error {
	var m modeReg
	m.setDevReset(true)
	if err := d.writeByte(regMode, uint8(m)); err != nil {
		return err
	}
	deadline := time.Now().Add(d.timeout)
	for {
		v, err := d.readByte(regMode)
		if err != nil {
			return err
		}
		if !modeReg(v).devReset() {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(d.poll)
	}
}

// SetHighImpedance puts the output driver into a true high-impedance state
// (effective immediately, even mid-playback). The device must not be in
// standby for hi-Z to take effect.
func (d *Device) SetHighImpedance(enable bool) error {
	v, err := d.readByte(regRegister3)
	if err != nil {
		return err
	}
	r := register3(v)
	r.setHiZ(enable)
	return d.writeByte(regRegister3, uint8(r))
}
