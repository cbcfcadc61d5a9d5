//go:build rp2040

// Serial console demo for one DRV2605L on I2C0. Keys:
//
//	1..9  play a ROM click/buzz effect
//	r     ramp the real-time playback level up and back down
//	s     toggle standby
//	d     run the actuator diagnostic
//	c     cancel in-flight playback
package main

import (
	"context"
	"machine"
	"time"

	"hapticcode-go/drivers/drv2605"
	"hapticcode-go/errcode"
	"hapticcode-go/services/config"
	"hapticcode-go/services/haptics"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

const (
	i2cSDA = machine.Pin(4)
	i2cSCL = machine.Pin(5)
	uartTX = machine.Pin(0)
	uartRX = machine.Pin(1)
)

var keyEffects = [9]drv2605.Effect{
	drv2605.StrongClick100,
	drv2605.SharpClick100,
	drv2605.SoftBump100,
	drv2605.DoubleClick100,
	drv2605.TripleClick100,
	drv2605.StrongBuzz100,
	drv2605.Alert750ms,
	drv2605.PulsingStrong1_100,
	drv2605.TransitionHum1_100,
}

func main() {
	println("[demo] boot …")
	time.Sleep(1500 * time.Millisecond)

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{BaudRate: 115200, TX: uartTX, RX: uartRX})

	i2cSDA.Configure(machine.PinConfig{Mode: machine.PinI2C})
	i2cSCL.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := machine.I2C0.Configure(machine.I2CConfig{SDA: i2cSDA, SCL: i2cSCL, Frequency: 400_000}); err != nil {
		println("[demo] FAIL: i2c configure:", err.Error())
		return
	}

	boardCfg, err := config.Load("pico")
	if err != nil {
		println("[demo] FAIL: config:", err.Error())
		return
	}
	svcCfg, err := boardCfg.ServiceConfig()
	if err != nil {
		println("[demo] FAIL: config:", err.Error())
		return
	}
	svc := haptics.New(machine.I2C0, svcCfg)

	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		println("[demo] FAIL: start:", err.Error())
		return
	}
	if cal, ok := svc.Calibration(); ok {
		println("[demo] calibrated comp=", cal.Comp, "bemf=", cal.BEMF, "gain=", cal.Gain)
	}

	go drainEvents(svc)

	println("[demo] ready; keys: 1-9 play, r ramp, s standby, d diag, c cancel")
	standby := false
	var buf [1]byte
	for {
		n, err := u.RecvSomeContext(ctx, buf[:])
		if err != nil || n == 0 {
			continue
		}
		b := buf[0]
		switch {
		case b >= '1' && b <= '9':
			e := keyEffects[b-'1']
			println("[demo] play effect", uint8(e))
			println("[demo] enqueue:", string(svc.Play(e)))
		case b == 'r':
			println("[demo] rtp ramp:", string(svc.RampLevel(255, time.Second)), string(svc.RampLevel(0, time.Second)))
		case b == 's':
			standby = !standby
			println("[demo] standby:", standby, string(svc.Standby(standby)))
		case b == 'd':
			println("[demo] diag:", string(svc.Diagnose()))
		case b == 'c':
			println("[demo] cancel:", string(svc.Cancel()))
		}
	}
}

func drainEvents(svc *haptics.Service) {
	for ev := range svc.Events() {
		if ev.Err != "" && ev.Err != errcode.OK {
			println("[demo] event", ev.Tag, "err:", string(ev.Err))
			continue
		}
		println("[demo] event", ev.Tag)
	}
}
