package drv2605

// Sequence is the full set of eight waveform-sequencer slots. Playback runs
// slot 0→7 and stops early at the first Stop slot. All eight slots always
// travel to the device in a single bus write so a partially updated sequence
// can never play.
type Sequence [8]Effect

// SetSequence writes the eight sequencer slots in one transaction (base
// address 0x04 plus eight data bytes).
func (d *Device) SetSequence(seq Sequence) error {
	d.w[0] = regWaveformSeq
	for i, e := range seq {
		d.w[1+i] = uint8(e)
	}
	if err := d.bus.Tx(Address, d.w[:9], nil); err != nil {
		return ErrConnection
	}
	return nil
}

// SetSingle loads one effect followed by an explicit Stop, so playback halts
// after a single waveform.
func (d *Device) SetSingle(e Effect) error {
	d.w[0] = regWaveformSeq
	d.w[1] = uint8(e)
	d.w[2] = uint8(Stop)
	if err := d.bus.Tx(Address, d.w[:3], nil); err != nil {
		return ErrConnection
	}
	return nil
}

// SetGo fires (or, with false, cancels) whatever process the current mode
// selects: sequencer playback, diagnostics or auto-calibration. The hardware
// clears the bit itself when the process completes.
func (d *Device) SetGo(fire bool) error {
	v, err := d.readByte(regGo)
	if err != nil {
		return err
	}
	g := goReg(v)
	g.setGoBit(fire)
	return d.writeByte(regGo, uint8(g))
}

// Busy reports whether the GO bit is still set, i.e. a sequence, diagnostic
// or calibration run is in flight.
func (d *Device) Busy() (bool, error) {
	v, err := d.readByte(regGo)
	if err != nil {
		return false, err
	}
	return goReg(v).goBit(), nil
}

// WaitUntilIdle polls the GO bit until the device clears it, bounded by the
// configured poll interval and timeout.
func (d *Device) WaitUntilIdle() error {
	return d.waitGoClear()
}

// SetRTPLevel sets the real-time playback drive level. Only meaningful while
// the device is in ModeRTP; with the unsigned data format SetModeRTP selects,
// 0 is idle and 255 full drive.
func (d *Device) SetRTPLevel(level uint8) error {
	return d.writeByte(regRTPInput, level)
}

// RTPLevel reads back the current real-time playback level.
func (d *Device) RTPLevel() (uint8, error) {
	return d.readByte(regRTPInput)
}

// Open-loop library trim. Each offset is a signed count of playback
// intervals added to the corresponding portion of every library waveform;
// closed-loop operation handles overdrive and braking automatically and
// ignores the overdrive/brake offsets.

// SetOverdriveTimeOffset trims the overdrive portion of library waveforms.
func (d *Device) SetOverdriveTimeOffset(v int8) error {
	return d.writeByte(regOverdriveTimeOffset, uint8(v))
}

// SetSustainTimeOffsetPositive trims the positive sustain portion.
func (d *Device) SetSustainTimeOffsetPositive(v int8) error {
	return d.writeByte(regSustainTimeOffsetPos, uint8(v))
}

// SetSustainTimeOffsetNegative trims the negative sustain portion.
func (d *Device) SetSustainTimeOffsetNegative(v int8) error {
	return d.writeByte(regSustainTimeOffsetNeg, uint8(v))
}

// SetBrakeTimeOffset trims the braking portion of library waveforms.
func (d *Device) SetBrakeTimeOffset(v int8) error {
	return d.writeByte(regBrakeTimeOffset, uint8(v))
}
