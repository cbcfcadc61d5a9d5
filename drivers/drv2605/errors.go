package drv2605

import "errors"

// Sentinel errors (TinyGo-safe; no fmt). Every driver operation returns at
// most one of these; the driver performs no internal retries.
var (
	// ErrWrongDeviceID means the STATUS device-id field did not report a
	// DRV2605L. Fatal to Configure.
	ErrWrongDeviceID = errors.New("drv2605: wrong device id")

	// ErrWrongMotorType means the requested operation is invalid for the
	// motor type the handle was built with (e.g. the LRA library on ERM).
	ErrWrongMotorType = errors.New("drv2605: not valid for motor type")

	// ErrConnection covers any transport-level transaction failure. Retry
	// policy, if any, belongs to the transport or the caller.
	ErrConnection = errors.New("drv2605: bus transaction failed")

	// ErrDiagnosticFailed means the diagnostic routine found the actuator
	// missing, shorted, or giving out-of-range back-EMF.
	ErrDiagnosticFailed = errors.New("drv2605: actuator diagnostic failed")

	// ErrCalibrationFailed means auto-calibration did not converge.
	ErrCalibrationFailed = errors.New("drv2605: auto-calibration did not converge")

	// ErrOTPNotProgrammed means factory calibration was requested but the
	// one-time-programmable memory was never written.
	ErrOTPNotProgrammed = errors.New("drv2605: OTP memory not programmed")

	// ErrTimeout means the GO (or DEV_RESET) bit did not self-clear within
	// the configured budget.
	ErrTimeout = errors.New("drv2605: timeout waiting for device")
)
