package haptics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hapticcode-go/drivers/drv2605"
	"hapticcode-go/errcode"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*fakeBus)(nil)

// fakeBus is a concurrency-safe DRV2605L register file. The worker goroutine
// and the test body both touch it, hence the lock.
type fakeBus struct {
	mu   sync.Mutex
	regs [0x23]uint8

	goClearAfter int
	busyPolls    int
	diagFailed   bool
}

const (
	regStatus   = 0x00
	regMode     = 0x01
	regRTPInput = 0x02
	regGo       = 0x0C
	regControl4 = 0x1E
)

func newFakeBus() *fakeBus {
	f := &fakeBus{}
	f.regs[regStatus] = 7 << 5
	f.regs[regControl4] = 0x24 // OTP programmed
	return f
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if addr != drv2605.Address {
		return errors.New("i2c: wrong address")
	}
	if len(w) == 1 && len(r) == 1 {
		reg := w[0]
		switch reg {
		case regGo:
			if f.busyPolls > 0 {
				f.busyPolls--
				r[0] = 0x01
				return nil
			}
			f.regs[regGo] &^= 0x01
			r[0] = f.regs[regGo]
		case regStatus:
			v := f.regs[regStatus]
			if f.diagFailed {
				v |= 0x08
			}
			r[0] = v
		default:
			r[0] = f.regs[reg]
		}
		return nil
	}
	if len(r) == 0 && len(w) >= 2 {
		reg := w[0]
		for i, v := range w[1:] {
			f.regs[int(reg)+i] = v
		}
		if reg == regGo && w[1]&0x01 != 0 {
			f.busyPolls = f.goClearAfter
		}
		return nil
	}
	return errors.New("i2c: unexpected transaction shape")
}

func (f *fakeBus) reg(i uint8) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[i]
}

func fastConfig() Config {
	return Config{
		Calibration:  drv2605.Calibration{Mode: drv2605.CalibrationOTP},
		PollInterval: time.Millisecond,
		Timeout:      100 * time.Millisecond,
	}
}

func waitEvent(t *testing.T, s *Service, tag string) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-s.Events():
			if ev.Tag == tag {
				return ev
			}
		case <-deadline:
			t.Fatalf("no %q event", tag)
		}
	}
}

func TestStartConfigureFailure(t *testing.T) {
	bus := newFakeBus()
	bus.regs[regStatus] = 3 << 5 // wrong part
	s := New(bus, fastConfig())

	if err := s.Start(context.Background()); !errors.Is(err, drv2605.ErrWrongDeviceID) {
		t.Fatalf("expected ErrWrongDeviceID, got %v", err)
	}
	ev := waitEvent(t, s, "configure_failed")
	if ev.Err != errcode.WrongDevice {
		t.Fatalf("event code = %q, want %q", ev.Err, errcode.WrongDevice)
	}
	if code := s.Play(drv2605.StrongClick100); code != errcode.NotReady {
		t.Fatalf("play on dead service = %q, want %q", code, errcode.NotReady)
	}
}

func TestPlayCompletes(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 3
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(bus, fastConfig())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Close()

	if code := s.Play(drv2605.StrongClick100); code != errcode.OK {
		t.Fatalf("play = %q", code)
	}
	ev := waitEvent(t, s, "play_done")
	if ev.Err != errcode.OK {
		t.Fatalf("play_done code = %q", ev.Err)
	}
	// Slot 0 carries the effect, slot 1 the stop marker.
	if got := bus.reg(0x04); got != uint8(drv2605.StrongClick100) {
		t.Fatalf("sequencer slot 0 = %d", got)
	}
	if got := bus.reg(0x05); got != 0 {
		t.Fatalf("sequencer slot 1 = %d, want stop", got)
	}
}

func TestPlayTimeout(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 1 << 30 // playback never finishes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(bus, fastConfig())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Close()

	if code := s.Play(drv2605.Buzz1_100); code != errcode.OK {
		t.Fatalf("play = %q", code)
	}
	ev := waitEvent(t, s, "play_timeout")
	if ev.Err != errcode.Timeout {
		t.Fatalf("play_timeout code = %q", ev.Err)
	}
}

func TestSetLevelEntersRTP(t *testing.T) {
	bus := newFakeBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(bus, fastConfig())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Close()

	if code := s.SetLevel(0x80); code != errcode.OK {
		t.Fatalf("set level = %q", code)
	}

	deadline := time.Now().Add(2 * time.Second)
	for bus.reg(regRTPInput) != 0x80 {
		if time.Now().After(deadline) {
			t.Fatal("rtp level never written")
		}
		time.Sleep(time.Millisecond)
	}
	if mode := bus.reg(regMode) & 0x07; mode != 5 {
		t.Fatalf("mode = %d, want rtp", mode)
	}
	if bus.reg(regMode)&0x40 != 0 {
		t.Fatal("device left in standby while driving")
	}
}

func TestRampLevel(t *testing.T) {
	bus := newFakeBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(bus, fastConfig())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Close()

	if code := s.RampLevel(200, 50*time.Millisecond); code != errcode.OK {
		t.Fatalf("ramp enqueue = %q", code)
	}
	ev := waitEvent(t, s, "ramp_done")
	if ev.Err != errcode.OK {
		t.Fatalf("ramp_done code = %q", ev.Err)
	}
	if got := bus.reg(regRTPInput); got != 200 {
		t.Fatalf("ramp landed on %d, want 200", got)
	}

	if code := s.RampLevel(0, 50*time.Millisecond); code != errcode.OK {
		t.Fatalf("ramp down enqueue = %q", code)
	}
	waitEvent(t, s, "ramp_done")
	if got := bus.reg(regRTPInput); got != 0 {
		t.Fatalf("ramp down landed on %d, want 0", got)
	}
	if bus.reg(regMode)&0x40 == 0 {
		t.Fatal("zero level did not re-enter standby")
	}
}

func TestDiagnoseFailure(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 1
	bus.diagFailed = true
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(bus, fastConfig())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Close()

	if code := s.Diagnose(); code != errcode.OK {
		t.Fatalf("diagnose enqueue = %q", code)
	}
	ev := waitEvent(t, s, "diag_failed")
	if ev.Err != errcode.DiagnosticFailed {
		t.Fatalf("diag_failed code = %q, want %q", ev.Err, errcode.DiagnosticFailed)
	}
}

func TestCloseStopsWorker(t *testing.T) {
	bus := newFakeBus()
	s := New(bus, fastConfig())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if code := s.Play(drv2605.StrongClick100); code != errcode.NotReady {
		t.Fatalf("play after close = %q, want %q", code, errcode.NotReady)
	}
	if bus.reg(regMode)&0x40 == 0 {
		t.Fatal("device not left in standby on shutdown")
	}
}
