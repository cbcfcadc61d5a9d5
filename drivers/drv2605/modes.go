package drv2605

// Mode is the 3-bit operating mode code in the mode register.
type Mode uint8

const (
	// ModeInternalTrigger plays the waveform sequencer when the GO bit is
	// set in software.
	ModeInternalTrigger Mode = 0
	// ModeExtTriggerEdge sets GO on a rising edge of IN/TRIG; a second edge
	// before completion cancels playback.
	ModeExtTriggerEdge Mode = 1
	// ModeExtTriggerLevel makes GO follow the IN/TRIG level.
	ModeExtTriggerLevel Mode = 2
	// ModePWMAnalog drives the actuator from a PWM or analog signal on
	// IN/TRIG; the PWM/analog choice is a Control3 bit.
	ModePWMAnalog Mode = 3
	// ModeAudioToVibe converts an AC-coupled audio signal into vibration.
	ModeAudioToVibe Mode = 4
	// ModeRTP drives the actuator from the real-time playback input
	// register, updated continuously by the host.
	ModeRTP Mode = 5
	// ModeDiagnostics runs the actuator diagnostic when GO is set.
	ModeDiagnostics Mode = 6
	// ModeAutoCalibration runs auto-calibration when GO is set.
	ModeAutoCalibration Mode = 7
)

// Library identifies one of the built-in ROM waveform sets. Each library
// holds the same waveforms tuned for a different motor response class;
// LibraryLRA is the only closed-loop LRA set.
type Library uint8

const (
	LibraryEmpty Library = iota
	LibraryA             // 1.3 V rated ERM, rise 40–60 ms, brake 20–40 ms
	LibraryB             // 3 V rated ERM, rise 40–60 ms, brake 5–15 ms
	LibraryC             // 3 V rated ERM, rise 60–80 ms, brake 10–20 ms
	LibraryD             // 3 V rated ERM, rise 100–140 ms, brake 15–25 ms
	LibraryE             // 3 V rated ERM, rise >140 ms, brake >30 ms
	LibraryLRA           // LRA closed-loop set
	LibraryF             // 4.5 V rated ERM, rise 35–45 ms, brake 10–20 ms
)

// SetModeROM configures sequencer playback from the given ROM library and
// arms the internal (software GO) trigger. ERM motors are forced open-loop
// (the ROM libraries were tuned that way) while LRA motors run closed-loop.
// Selecting LibraryLRA on an ERM handle fails with ErrWrongMotorType.
func (d *Device) SetModeROM(lib Library) error {
	if d.motor != MotorLRA && lib == LibraryLRA {
		return ErrWrongMotorType
	}
	if err := d.setOpenLoop(d.motor == MotorERM); err != nil {
		return err
	}
	v, err := d.readByte(regRegister3)
	if err != nil {
		return err
	}
	r := register3(v)
	r.setLibrary(lib)
	if err := d.writeByte(regRegister3, uint8(r)); err != nil {
		return err
	}
	return d.writeMode(ModeInternalTrigger)
}

// SetModePWM accepts PWM data on the IN/TRIG pin; the duty cycle sets the
// drive amplitude. Always closed-loop.
func (d *Device) SetModePWM() error {
	return d.setModePin(false)
}

// SetModeAnalog accepts an analog voltage on the IN/TRIG pin; the input
// amplitude sets the drive amplitude (1.8 V full scale outside standby).
// Always closed-loop.
func (d *Device) SetModeAnalog() error {
	return d.setModePin(true)
}

func (d *Device) setModePin(analog bool) error {
	if err := d.setOpenLoop(false); err != nil {
		return err
	}
	v, err := d.readByte(regControl3)
	if err != nil {
		return err
	}
	c3 := ctrl3Reg(v)
	c3.setPWMAnalog(analog)
	if err := d.writeByte(regControl3, uint8(c3)); err != nil {
		return err
	}
	return d.writeMode(ModePWMAnalog)
}

// SetModeRTP plays the level in the RTP input register until the level or
// mode changes. The RTP data format is switched to unsigned, so 0 is idle
// and 255 full drive.
func (d *Device) SetModeRTP() error {
	if err := d.setOpenLoop(false); err != nil {
		return err
	}
	v, err := d.readByte(regControl3)
	if err != nil {
		return err
	}
	c3 := ctrl3Reg(v)
	c3.setDataFormatRTP(true)
	if err := d.writeByte(regControl3, uint8(c3)); err != nil {
		return err
	}
	return d.writeMode(ModeRTP)
}

// setOpenLoop toggles the loop mode for the configured motor type only. The
// ERM and LRA open-loop controls live in different Control3 bits; dispatching
// on the stored tag guarantees a handle never touches the other class's bit.
func (d *Device) setOpenLoop(enable bool) error {
	v, err := d.readByte(regControl3)
	if err != nil {
		return err
	}
	c3 := ctrl3Reg(v)
	if d.motor == MotorLRA {
		c3.setLRAOpenLoop(enable)
	} else {
		c3.setERMOpenLoop(enable)
	}
	return d.writeByte(regControl3, uint8(c3))
}

// writeMode read-modify-writes the 3-bit mode code, leaving the standby and
// reset bits untouched.
func (d *Device) writeMode(m Mode) error {
	v, err := d.readByte(regMode)
	if err != nil {
		return err
	}
	mr := modeReg(v)
	mr.setMode(m)
	return d.writeByte(regMode, uint8(mr))
}
