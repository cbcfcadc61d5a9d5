package drv2605

import "time"

// I2C byte-register operations. Writes are [reg, v0, v1, ...]; multi-byte
// writes land in consecutive registers starting at reg. Reads are a write of
// [reg] followed by a repeated-start read of one byte (drivers.I2C Tx must
// not release the bus between the two phases).
//
// Per the device contract, any transport failure collapses to ErrConnection;
// the underlying cause is intentionally not propagated.

func (d *Device) readByte(reg uint8) (uint8, error) {
	d.w[0] = reg
	if err := d.bus.Tx(Address, d.w[:1], d.r[:1]); err != nil {
		return 0, ErrConnection
	}
	return d.r[0], nil
}

func (d *Device) writeByte(reg, val uint8) error {
	d.w[0] = reg
	d.w[1] = val
	if err := d.bus.Tx(Address, d.w[:2], nil); err != nil {
		return ErrConnection
	}
	return nil
}

// waitGoClear busy-polls the GO bit until the hardware clears it, bounded by
// the device's poll interval and deadline budget. It is shared by playback,
// diagnostics and auto-calibration waits.
func (d *Device) waitGoClear() error {
	deadline := time.Now().Add(d.timeout)
	for {
		busy, err := d.Busy()
		if err != nil {
			return err
		}
		if !busy {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(d.poll)
	}
}
