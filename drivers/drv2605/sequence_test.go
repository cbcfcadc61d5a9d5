package drv2605

import (
	"errors"
	"testing"
	"time"
)

func TestSetSequenceSingleTransaction(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, MotorERM)

	seq := Sequence{
		StrongClick100,
		Delay(200 * time.Millisecond),
		SoftBump30,
		Stop,
	}
	if err := d.SetSequence(seq); err != nil {
		t.Fatalf("set sequence: %v", err)
	}

	if len(bus.writes) != 1 {
		t.Fatalf("sequence took %d writes, want 1", len(bus.writes))
	}
	w := bus.writes[0]
	if len(w) != 9 || w[0] != regWaveformSeq {
		t.Fatalf("sequence write = %v, want 9 bytes at %#02x", w, regWaveformSeq)
	}
	want := [8]uint8{1, 0x80 | 20, 9, 0, 0, 0, 0, 0}
	for i, v := range want {
		if w[1+i] != v {
			t.Fatalf("slot %d = %#02x, want %#02x", i, w[1+i], v)
		}
	}
}

func TestSetSingleThenGo(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, MotorERM)

	if err := d.SetSingle(StrongClick100); err != nil {
		t.Fatalf("set single: %v", err)
	}
	if err := d.SetGo(true); err != nil {
		t.Fatalf("go: %v", err)
	}

	if len(bus.writes) != 2 {
		t.Fatalf("took %d writes, want 2: %v", len(bus.writes), bus.writes)
	}
	if w := bus.writes[0]; len(w) != 3 || w[0] != regWaveformSeq || w[1] != 1 || w[2] != 0 {
		t.Fatalf("single write = %v, want [0x04 1 0]", w)
	}
	if w := bus.writes[1]; w[0] != regGo || w[1]&0x01 == 0 {
		t.Fatalf("go write = %v", w)
	}
}

func TestWaitUntilIdle(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 3
	d := New(bus, MotorERM)
	d.poll = 100 * time.Microsecond

	if err := d.SetGo(true); err != nil {
		t.Fatalf("go: %v", err)
	}
	if err := d.WaitUntilIdle(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	// One read by SetGo's read-modify-write, three busy polls, one clear.
	if n := bus.readCount(regGo); n < 4 {
		t.Fatalf("GO polled %d times, want at least 4", n)
	}
}

func TestWaitUntilIdleTimeout(t *testing.T) {
	bus := newFakeBus()
	bus.goClearAfter = 1 << 30 // never clears
	d := New(bus, MotorERM)
	d.poll = 100 * time.Microsecond
	d.timeout = 3 * time.Millisecond

	if err := d.SetGo(true); err != nil {
		t.Fatalf("go: %v", err)
	}
	if err := d.WaitUntilIdle(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestRTPLevelRoundTrip(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, MotorERM)

	if err := d.SetRTPLevel(0x7F); err != nil {
		t.Fatalf("set level: %v", err)
	}
	got, err := d.RTPLevel()
	if err != nil {
		t.Fatalf("read level: %v", err)
	}
	if got != 0x7F {
		t.Fatalf("level = %#02x, want 0x7f", got)
	}
}

func TestLibraryTrimOffsets(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, MotorERM)

	if err := d.SetOverdriveTimeOffset(-3); err != nil {
		t.Fatalf("overdrive offset: %v", err)
	}
	if err := d.SetBrakeTimeOffset(5); err != nil {
		t.Fatalf("brake offset: %v", err)
	}
	if got := bus.regs[regOverdriveTimeOffset]; got != uint8(0xFD) {
		t.Fatalf("overdrive offset register = %#02x, want 0xfd", got)
	}
	if got := bus.regs[regBrakeTimeOffset]; got != 5 {
		t.Fatalf("brake offset register = %d, want 5", got)
	}
}
