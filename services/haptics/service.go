// Package haptics wraps one DRV2605L behind a single-goroutine worker.
// Callers enqueue playback requests without blocking; completion and fault
// conditions surface as events. The worker is the only goroutine that ever
// touches the bus, so the driver's single-owner contract holds by
// construction.
package haptics

import (
	"context"
	"sync/atomic"
	"time"

	"hapticcode-go/drivers/drv2605"
	"hapticcode-go/errcode"
	"hapticcode-go/x/ramp"

	"tinygo.org/x/drivers"
)

// Event is a worker notification: a tag such as "play_done" plus an error
// code when the condition is degraded.
type Event struct {
	Tag string
	Err errcode.Code
	TS  int64
}

// Config selects the actuator and playback behaviour.
type Config struct {
	Motor       drv2605.MotorType
	Calibration drv2605.Calibration

	// Library is the ROM waveform set for Play/PlaySequence. Zero picks a
	// sensible default for the motor class (B for ERM, the LRA set for LRA).
	Library drv2605.Library

	// PollInterval spaces the playback-completion polls. Default 5 ms.
	PollInterval time.Duration
	// Timeout bounds a single playback run. Default 2 s.
	Timeout time.Duration
}

type opCode uint8

const (
	opPlay opCode = iota
	opPlaySeq
	opSetLevel
	opRampLevel
	opStandby
	opCancel
	opDiagnose
	opStop
)

type request struct {
	op  opCode
	arg any
}

type rampArgs struct {
	to  uint8
	dur time.Duration
}

// Service is a single-goroutine haptics worker for one DRV2605L.
type Service struct {
	cfg Config

	// Owned by the worker after Start (construction/configuration happens
	// before the worker goroutine exists).
	dev *drv2605.Device

	alive atomic.Bool
	reqCh chan request
	evCh  chan Event
	done  chan struct{}

	// Worker playback state.
	mode     workerMode
	playing  bool
	deadline time.Time
}

type workerMode uint8

const (
	modeNone workerMode = iota
	modeROM
	modeRTP
)

// New creates a service bound to bus. No bus traffic until Start.
func New(bus drivers.I2C, cfg Config) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.Library == drv2605.LibraryEmpty {
		if cfg.Motor == drv2605.MotorLRA {
			cfg.Library = drv2605.LibraryLRA
		} else {
			cfg.Library = drv2605.LibraryB
		}
	}
	return &Service{
		cfg:   cfg,
		dev:   drv2605.New(bus, cfg.Motor),
		reqCh: make(chan request, 8),
		evCh:  make(chan Event, 16),
		done:  make(chan struct{}),
	}
}

// Start verifies and calibrates the device, then launches the worker. The
// device is left in standby until the first playback request.
func (s *Service) Start(ctx context.Context) error {
	err := s.dev.Configure(drv2605.Config{
		Calibration:  s.cfg.Calibration,
		PollInterval: s.cfg.PollInterval,
		Timeout:      s.cfg.Timeout,
	})
	if err != nil {
		s.emit("configure_failed", errcode.MapDriverErr(err))
		return err
	}
	s.alive.Store(true)
	go s.worker(ctx)
	return nil
}

// Events returns the notification channel. Events are dropped, never
// blocked on, when the consumer falls behind.
func (s *Service) Events() <-chan Event { return s.evCh }

// Calibration returns the load parameters captured by the last automatic
// calibration, if one has run on this device handle.
func (s *Service) Calibration() (drv2605.LoadParams, bool) {
	return s.dev.LastCalibration()
}

// ---- Non-blocking enqueue API ----

func (s *Service) send(req request) errcode.Code {
	if !s.alive.Load() {
		return errcode.NotReady
	}
	select {
	case s.reqCh <- req:
		return errcode.OK
	default:
		return errcode.Busy
	}
}

// Play fires a single ROM waveform.
func (s *Service) Play(e drv2605.Effect) errcode.Code {
	return s.send(request{op: opPlay, arg: e})
}

// PlaySequence fires a full eight-slot sequence.
func (s *Service) PlaySequence(seq drv2605.Sequence) errcode.Code {
	return s.send(request{op: opPlaySeq, arg: seq})
}

// SetLevel switches to real-time playback and drives at level (0 idle,
// 255 full). Level 0 returns the device to standby.
func (s *Service) SetLevel(level uint8) errcode.Code {
	return s.send(request{op: opSetLevel, arg: level})
}

// RampLevel sweeps the real-time playback level linearly from its current
// value to target over dur. The worker is occupied for the whole sweep; a
// "ramp_done" event marks completion.
func (s *Service) RampLevel(target uint8, dur time.Duration) errcode.Code {
	return s.send(request{op: opRampLevel, arg: rampArgs{to: target, dur: dur}})
}

// Standby enters or leaves low-power standby.
func (s *Service) Standby(on bool) errcode.Code {
	return s.send(request{op: opStandby, arg: on})
}

// Cancel stops any in-flight playback.
func (s *Service) Cancel() errcode.Code {
	return s.send(request{op: opCancel})
}

// Diagnose runs the actuator diagnostic. The result arrives as a
// "diag_done" or "diag_failed" event.
func (s *Service) Diagnose() errcode.Code {
	return s.send(request{op: opDiagnose})
}

// Close stops the worker, bounded. Safe to call more than once.
func (s *Service) Close() error {
	if s.alive.Load() {
		select {
		case s.reqCh <- request{op: opStop}:
		default:
		}
		t := time.NewTimer(300 * time.Millisecond)
		select {
		case <-s.done:
		case <-t.C:
		}
		t.Stop()
	}
	return nil
}

// ---- Worker ----

func (s *Service) emit(tag string, code errcode.Code) {
	ev := Event{Tag: tag, Err: code, TS: time.Now().UnixNano()}
	select {
	case s.evCh <- ev:
	default:
	}
}

func (s *Service) worker(ctx context.Context) {
	// Deferred LIFO: alive drops before done closes, so a caller returning
	// from Close can trust s.alive.
	defer close(s.done)
	defer s.alive.Store(false)

	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return

		case req := <-s.reqCh:
			switch req.op {
			case opPlay:
				if e, ok := req.arg.(drv2605.Effect); ok {
					s.play(func() error { return s.dev.SetSingle(e) })
				}
			case opPlaySeq:
				if seq, ok := req.arg.(drv2605.Sequence); ok {
					s.play(func() error { return s.dev.SetSequence(seq) })
				}
			case opSetLevel:
				if level, ok := req.arg.(uint8); ok {
					s.setLevel(level)
				}
			case opRampLevel:
				if a, ok := req.arg.(rampArgs); ok {
					s.rampLevel(ctx, a)
				}
			case opStandby:
				if on, ok := req.arg.(bool); ok {
					s.standby(on)
				}
			case opCancel:
				s.cancel()
			case opDiagnose:
				s.diagnose()
			case opStop:
				s.shutdown()
				return
			}

		case <-poll.C:
			if !s.playing {
				break
			}
			busy, err := s.dev.Busy()
			switch {
			case err != nil:
				s.playing = false
				s.emit("play_failed", errcode.MapDriverErr(err))
			case !busy:
				s.playing = false
				s.emit("play_done", errcode.OK)
			case time.Now().After(s.deadline):
				s.playing = false
				_ = s.dev.SetGo(false)
				s.emit("play_timeout", errcode.Timeout)
			}
		}
	}
}

// ensureROM arms sequencer playback with the configured library, once.
func (s *Service) ensureROM() error {
	if s.mode == modeROM {
		return nil
	}
	if err := s.dev.SetModeROM(s.cfg.Library); err != nil {
		return err
	}
	s.mode = modeROM
	return nil
}

func (s *Service) play(load func() error) {
	if err := s.ensureROM(); err != nil {
		s.emit("play_failed", errcode.MapDriverErr(err))
		return
	}
	if err := s.dev.SetStandby(false); err != nil {
		s.emit("play_failed", errcode.MapDriverErr(err))
		return
	}
	if err := load(); err != nil {
		s.emit("play_failed", errcode.MapDriverErr(err))
		return
	}
	if err := s.dev.SetGo(true); err != nil {
		s.emit("play_failed", errcode.MapDriverErr(err))
		return
	}
	s.playing = true
	s.deadline = time.Now().Add(s.cfg.Timeout)
}

func (s *Service) setLevel(level uint8) {
	if s.mode != modeRTP {
		if err := s.dev.SetModeRTP(); err != nil {
			s.emit("rtp_failed", errcode.MapDriverErr(err))
			return
		}
		s.mode = modeRTP
	}
	if err := s.dev.SetRTPLevel(level); err != nil {
		s.emit("rtp_failed", errcode.MapDriverErr(err))
		return
	}
	if err := s.dev.SetStandby(level == 0); err != nil {
		s.emit("rtp_failed", errcode.MapDriverErr(err))
	}
}

// rampLevel sweeps synchronously in the worker. Context cancellation aborts
// mid-sweep; the level then stays wherever the ramp left it.
func (s *Service) rampLevel(ctx context.Context, a rampArgs) {
	if s.mode != modeRTP {
		if err := s.dev.SetModeRTP(); err != nil {
			s.emit("rtp_failed", errcode.MapDriverErr(err))
			return
		}
		s.mode = modeRTP
	}
	cur, err := s.dev.RTPLevel()
	if err != nil {
		s.emit("rtp_failed", errcode.MapDriverErr(err))
		return
	}
	if err := s.dev.SetStandby(false); err != nil {
		s.emit("rtp_failed", errcode.MapDriverErr(err))
		return
	}

	tick := func(d time.Duration) bool {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
			return true
		}
	}
	failed := false
	set := func(level uint8) {
		if failed {
			return
		}
		if err := s.dev.SetRTPLevel(level); err != nil {
			failed = true
			s.emit("rtp_failed", errcode.MapDriverErr(err))
		}
	}
	ramp.Linear(cur, a.to, uint32(a.dur/time.Millisecond), 32, tick, set)
	if failed {
		return
	}
	if a.to == 0 {
		if err := s.dev.SetStandby(true); err != nil {
			s.emit("rtp_failed", errcode.MapDriverErr(err))
			return
		}
	}
	s.emit("ramp_done", errcode.OK)
}

func (s *Service) standby(on bool) {
	if on && s.playing {
		s.cancel()
	}
	if err := s.dev.SetStandby(on); err != nil {
		s.emit("standby_failed", errcode.MapDriverErr(err))
	}
}

func (s *Service) cancel() {
	if s.playing {
		s.playing = false
		if err := s.dev.SetGo(false); err != nil {
			s.emit("cancel_failed", errcode.MapDriverErr(err))
			return
		}
	}
	s.emit("cancelled", errcode.OK)
}

// diagnose runs synchronously in the worker; playback requests queue up
// behind it for the duration of the routine.
func (s *Service) diagnose() {
	if s.playing {
		s.cancel()
	}
	if err := s.dev.RunDiagnostics(); err != nil {
		s.emit("diag_failed", errcode.MapDriverErr(err))
		return
	}
	s.mode = modeNone // the routine rewrote the mode register
	s.emit("diag_done", errcode.OK)
}

func (s *Service) shutdown() {
	if s.playing {
		s.playing = false
		_ = s.dev.SetGo(false)
	}
	_ = s.dev.SetStandby(true)
}
