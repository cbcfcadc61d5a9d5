// Package config resolves per-board haptics settings from JSON embedded in
// the firmware image. Boards are keyed by ID; the JSON lives in flash and is
// decoded once at boot.
package config

import (
	"encoding/json"
	"errors"
	"time"

	"hapticcode-go/drivers/drv2605"
	"hapticcode-go/services/haptics"
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Haptics is the on-flash wire form of a board's actuator settings.
type Haptics struct {
	Motor       string `json:"motor"`       // "erm" or "lra"
	Library     uint8  `json:"library"`     // ROM set; 0 picks the class default
	Calibration string `json:"calibration"` // "otp", "load" or "auto"

	// Saved results for calibration "load".
	Comp uint8 `json:"comp"`
	BEMF uint8 `json:"bemf"`
	Gain uint8 `json:"gain"`

	// LRA auto-calibration inputs; ignored for ERM boards.
	RatedVoltage uint8  `json:"rated_voltage"`
	ClampVoltage uint8  `json:"clamp_voltage"`
	ResonanceHz  uint32 `json:"resonance_hz"`

	PollIntervalMs uint32 `json:"poll_interval_ms"`
	TimeoutMs      uint32 `json:"timeout_ms"`
}

// Load decodes the embedded config for board.
func Load(board string) (Haptics, error) {
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return Haptics{}, errors.New("config: no embedded config for board: " + board)
	}
	var root struct {
		Haptics *Haptics `json:"haptics"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return Haptics{}, err
	}
	if root.Haptics == nil {
		return Haptics{}, errors.New("config: board config has no haptics section")
	}
	return *root.Haptics, nil
}

// ServiceConfig maps the wire form onto a haptics service configuration.
func (h Haptics) ServiceConfig() (haptics.Config, error) {
	cfg := haptics.Config{
		Library:      drv2605.Library(h.Library),
		PollInterval: time.Duration(h.PollIntervalMs) * time.Millisecond,
		Timeout:      time.Duration(h.TimeoutMs) * time.Millisecond,
	}

	switch h.Motor {
	case "erm", "":
		cfg.Motor = drv2605.MotorERM
	case "lra":
		cfg.Motor = drv2605.MotorLRA
	default:
		return haptics.Config{}, errors.New("config: unknown motor type: " + h.Motor)
	}

	switch h.Calibration {
	case "otp", "":
		cfg.Calibration.Mode = drv2605.CalibrationOTP
	case "load":
		cfg.Calibration.Mode = drv2605.CalibrationLoad
		cfg.Calibration.Load = drv2605.LoadParams{Comp: h.Comp, BEMF: h.BEMF, Gain: h.Gain}
	case "auto":
		cfg.Calibration.Mode = drv2605.CalibrationAuto
		cfg.Calibration.Auto = drv2605.DefaultAutoCalParams()
		if cfg.Motor == drv2605.MotorLRA {
			cfg.Calibration.LRA = drv2605.LRAParams{
				RatedVoltage: h.RatedVoltage,
				ClampVoltage: h.ClampVoltage,
				DriveTime:    drv2605.LRADriveTime(h.ResonanceHz),
			}
		}
	default:
		return haptics.Config{}, errors.New("config: unknown calibration mode: " + h.Calibration)
	}

	return cfg, nil
}
