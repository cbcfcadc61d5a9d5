// Package drv2605 register addresses and bit positions.
package drv2605

const (
	// 7-bit I2C address, fixed in hardware. Every device of the family answers
	// on the same address, which allows broadcast writes to run several
	// actuators in sync from one bus transaction.
	Address = 0x5A

	// Expected DEVICE_ID field value for the DRV2605L variant.
	deviceID = 7

	// --- Register sub-addresses (8-bit registers) ---

	regStatus      = 0x00 // R, flag bits clear on read
	regMode        = 0x01 // R/W (dev_reset, standby, mode[2:0])
	regRTPInput    = 0x02 // R/W, real-time playback level
	regRegister3   = 0x03 // R/W (hi_z, library_selection[2:0])
	regWaveformSeq = 0x04 // R/W, 8 consecutive slots 0x04..0x0B
	regGo          = 0x0C // R/W, bit0 self-clears on completion

	// Open-loop library waveform trim, 2s-complement playback intervals.
	regOverdriveTimeOffset  = 0x0D // R/W
	regSustainTimeOffsetPos = 0x0E // R/W
	regSustainTimeOffsetNeg = 0x0F // R/W
	regBrakeTimeOffset      = 0x10 // R/W

	// Audio-to-vibe block, unused by this driver.
	regA2VControl   = 0x11 // R/W
	regA2VMinInput  = 0x12 // R/W
	regA2VMaxInput  = 0x13 // R/W
	regA2VMinOutput = 0x14 // R/W
	regA2VMaxOutput = 0x15 // R/W

	// Calibration inputs and results.
	regRatedVoltage   = 0x16 // R/W, closed-loop full-scale reference
	regOverdriveClamp = 0x17 // R/W, overdrive bound / open-loop full scale
	regAutoCalComp    = 0x18 // R/W, auto-cal compensation result
	regAutoCalBEMF    = 0x19 // R/W, auto-cal back-EMF result
	regFeedbackCtrl   = 0x1A // R/W (n_erm_lra, fb_brake_factor, loop_gain, bemf_gain)

	regControl1 = 0x1B // R/W (startup_boost, ac_couple, drive_time[4:0])
	regControl2 = 0x1C // R/W (bidir_input, brake_stabilizer, sample/blanking/idiss)
	regControl3 = 0x1D // R/W (ng_thresh, open-loop bits, data_format_rtp, n_pwm_analog)
	regControl4 = 0x1E // R/W (zc_det_time, auto_cal_time, otp_status, otp_program)
	regControl5 = 0x1F // R/W (auto_ol_cnt, lra_auto_open_loop, playback_interval)

	regLRAOpenLoopPeriod = 0x20 // R/W
	regVBatMonitor       = 0x21 // R
	regLRAResonancePer   = 0x22 // R
)
