package drv2605

import (
	"errors"
	"testing"
	"time"
)

func TestAutoCalibrationERM(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 3
	// Converged results the routine "produces".
	bus.regs[regAutoCalComp] = 0x21
	bus.regs[regAutoCalBEMF] = 0x84
	d := New(bus, MotorERM)

	cfg := fastConfig()
	cfg.Calibration = Calibration{Mode: CalibrationAuto, Auto: DefaultAutoCalParams()}
	if err := d.Configure(cfg); err != nil {
		t.Fatalf("configure: %v", err)
	}

	fb := feedbackReg(bus.regs[regFeedbackCtrl])
	if fb.lraMode() {
		t.Fatal("ERM calibration selected LRA feedback mode")
	}
	if fb.fbBrakeFactor() != 2 || fb.loopGain() != 2 {
		t.Fatalf("feedback seed = %#02x, want brake 2 loop 2", uint8(fb))
	}
	// An ERM run must not touch the LRA-only registers.
	for _, reg := range []uint8{regRatedVoltage, regOverdriveClamp, regControl1} {
		if got := bus.writesTo(reg); len(got) != 0 {
			t.Fatalf("ERM calibration wrote LRA register %#02x", reg)
		}
	}

	got, ok := d.LastCalibration()
	if !ok {
		t.Fatal("no calibration captured")
	}
	want := LoadParams{Comp: 0x21, BEMF: 0x84, Gain: fb.bemfGain()}
	if got != want {
		t.Fatalf("captured calibration = %+v, want %+v", got, want)
	}
	if !modeReg(bus.regs[regMode]).standby() {
		t.Fatal("device not left in standby after calibration")
	}
}

func TestAutoCalibrationLRA(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 2
	d := New(bus, MotorLRA)

	cfg := fastConfig()
	cfg.Calibration = Calibration{
		Mode: CalibrationAuto,
		Auto: DefaultAutoCalParams(),
		LRA: LRAParams{
			RatedVoltage: 0x3E,
			ClampVoltage: 0x8C,
			DriveTime:    LRADriveTime(205),
		},
	}
	if err := d.Configure(cfg); err != nil {
		t.Fatalf("configure: %v", err)
	}

	if !feedbackReg(bus.regs[regFeedbackCtrl]).lraMode() {
		t.Fatal("LRA calibration did not select LRA feedback mode")
	}
	if got := bus.regs[regRatedVoltage]; got != 0x3E {
		t.Fatalf("rated voltage = %#02x, want 0x3E", got)
	}
	if got := bus.regs[regOverdriveClamp]; got != 0x8C {
		t.Fatalf("overdrive clamp = %#02x, want 0x8C", got)
	}
	if got := ctrl1Reg(bus.regs[regControl1]).driveTime(); got != 0x13 {
		t.Fatalf("drive time = %#02x, want 0x13", got)
	}
}

func TestAutoCalibrationFailure(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 3
	bus.diagFailed = true
	d := New(bus, MotorERM)

	cfg := fastConfig()
	cfg.Calibration = Calibration{Mode: CalibrationAuto, Auto: DefaultAutoCalParams()}
	if err := d.Configure(cfg); !errors.Is(err, ErrCalibrationFailed) {
		t.Fatalf("expected ErrCalibrationFailed, got %v", err)
	}
	// Converged values are garbage after a failed run and must not be
	// read back.
	if n := bus.readCount(regAutoCalComp); n != 0 {
		t.Fatalf("failed calibration read compensation register %d times", n)
	}
	if _, ok := d.LastCalibration(); ok {
		t.Fatal("failed calibration still captured results")
	}
}

func TestAutoCalibrationTimeout(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 1 << 30 // GO never clears
	d := New(bus, MotorERM)

	cfg := Config{
		Calibration:  Calibration{Mode: CalibrationAuto, Auto: DefaultAutoCalParams()},
		PollInterval: 100 * time.Microsecond,
		Timeout:      3 * time.Millisecond,
	}
	if err := d.Configure(cfg); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestRunDiagnosticsFailure(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 1
	bus.diagFailed = true
	d := New(bus, MotorERM)
	d.poll = 100 * time.Microsecond

	if err := d.RunDiagnostics(); !errors.Is(err, ErrDiagnosticFailed) {
		t.Fatalf("expected ErrDiagnosticFailed, got %v", err)
	}
}

func TestLRADriveTime(t *testing.T) {
	cases := []struct {
		hz   uint32
		want uint8
	}{
		{0, 0x13},   // unknown resonance, hardware default
		{205, 0x13}, // datasheet reference point
		{235, 0x10},
		{1000, 0x00}, // at the 0.5 ms floor
	}
	for _, tc := range cases {
		if got := LRADriveTime(tc.hz); got != tc.want {
			t.Errorf("LRADriveTime(%d) = %#02x, want %#02x", tc.hz, got, tc.want)
		}
	}
}
