package errcode

import (
	"errors"

	"hapticcode-go/drivers/drv2605"
)

// Code is a stable, event-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Busy          Code = "busy"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"
	NotReady      Code = "not_ready"
	Timeout       Code = "timeout"

	// Haptic driver conditions.
	WrongDevice       Code = "wrong_device"
	WrongMotorType    Code = "wrong_motor_type"
	Connection        Code = "connection"
	OTPBlank          Code = "otp_blank"
	CalibrationFailed Code = "calibration_failed"
	DiagnosticFailed  Code = "diagnostic_failed"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps the drv2605 sentinel errors to a Code.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, drv2605.ErrWrongDeviceID):
		return WrongDevice
	case errors.Is(err, drv2605.ErrWrongMotorType):
		return WrongMotorType
	case errors.Is(err, drv2605.ErrConnection):
		return Connection
	case errors.Is(err, drv2605.ErrOTPNotProgrammed):
		return OTPBlank
	case errors.Is(err, drv2605.ErrCalibrationFailed):
		return CalibrationFailed
	case errors.Is(err, drv2605.ErrDiagnosticFailed):
		return DiagnosticFailed
	case errors.Is(err, drv2605.ErrTimeout):
		return Timeout
	}
	return Error
}
