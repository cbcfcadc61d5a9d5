package drv2605

import (
	"time"

	"hapticcode-go/x/mathx"
)

// Effect is one waveform-sequencer slot value. Values 1..123 select a ROM
// waveform from the active library, Stop (0) ends the sequence early, and
// values with the top bit set are timed delays (low 7 bits × 10 ms).
type Effect uint8

// Stop ends sequence playback at this slot.
const Stop Effect = 0

// Delay returns a pseudo-effect that idles the playback engine for d,
// rounded to the 10 ms slot granularity and clamped to the 0..1270 ms range.
func Delay(d time.Duration) Effect {
	tens := mathx.Clamp(int64(d/(10*time.Millisecond)), 0, 127)
	return Effect(0x80 | uint8(tens))
}

// IsDelay reports whether e is a timed-delay slot rather than a waveform.
func (e Effect) IsDelay() bool { return e&0x80 != 0 }

// DelayDuration returns the wait time encoded in a delay slot, or 0 for
// waveform and Stop slots.
func (e Effect) DelayDuration() time.Duration {
	if !e.IsDelay() {
		return 0
	}
	return time.Duration(e&0x7F) * 10 * time.Millisecond
}

// The built-in ROM waveform catalog. Identifiers are fixed by the licensed
// library; every library provides the same 123 waveforms tuned for its motor
// class. Percentages are nominal output strength.
const (
	StrongClick100                Effect = 1
	StrongClick60                 Effect = 2
	StrongClick30                 Effect = 3
	SharpClick100                 Effect = 4
	SharpClick60                  Effect = 5
	SharpClick30                  Effect = 6
	SoftBump100                   Effect = 7
	SoftBump60                    Effect = 8
	SoftBump30                    Effect = 9
	DoubleClick100                Effect = 10
	DoubleClick60                 Effect = 11
	TripleClick100                Effect = 12
	SoftFuzz60                    Effect = 13
	StrongBuzz100                 Effect = 14
	Alert750ms                    Effect = 15
	Alert1000ms                   Effect = 16
	StrongClick1_100              Effect = 17
	StrongClick2_80               Effect = 18
	StrongClick3_60               Effect = 19
	StrongClick4_30               Effect = 20
	MediumClick1_100              Effect = 21
	MediumClick2_80               Effect = 22
	MediumClick3_60               Effect = 23
	SharpTick1_100                Effect = 24
	SharpTick2_80                 Effect = 25
	SharpTick3_60                 Effect = 26
	ShortDoubleClickStrong1_100   Effect = 27
	ShortDoubleClickStrong2_80    Effect = 28
	ShortDoubleClickStrong3_60    Effect = 29
	ShortDoubleClickStrong4_30    Effect = 30
	ShortDoubleClickMedium1_100   Effect = 31
	ShortDoubleClickMedium2_80    Effect = 32
	ShortDoubleClickMedium3_60    Effect = 33
	ShortDoubleSharpTick1_100     Effect = 34
	ShortDoubleSharpTick2_80      Effect = 35
	ShortDoubleSharpTick3_60      Effect = 36
	LongDoubleSharpClickStrong1_100 Effect = 37
	LongDoubleSharpClickStrong2_80  Effect = 38
	LongDoubleSharpClickStrong3_60  Effect = 39
	LongDoubleSharpClickStrong4_30  Effect = 40
	LongDoubleSharpClickMedium1_100 Effect = 41
	LongDoubleSharpClickMedium2_80  Effect = 42
	LongDoubleSharpClickMedium3_60  Effect = 43
	LongDoubleSharpTick1_100      Effect = 44
	LongDoubleSharpTick2_80       Effect = 45
	LongDoubleSharpTick3_60       Effect = 46
	Buzz1_100                     Effect = 47
	Buzz2_80                      Effect = 48
	Buzz3_60                      Effect = 49
	Buzz4_40                      Effect = 50
	Buzz5_20                      Effect = 51
	PulsingStrong1_100            Effect = 52
	PulsingStrong2_60             Effect = 53
	PulsingMedium1_100            Effect = 54
	PulsingMedium2_60             Effect = 55
	PulsingSharp1_100             Effect = 56
	PulsingSharp2_60              Effect = 57
	TransitionClick1_100          Effect = 58
	TransitionClick2_80           Effect = 59
	TransitionClick3_60           Effect = 60
	TransitionClick4_40           Effect = 61
	TransitionClick5_20           Effect = 62
	TransitionClick6_10           Effect = 63
	TransitionHum1_100            Effect = 64
	TransitionHum2_80             Effect = 65
	TransitionHum3_60             Effect = 66
	TransitionHum4_40             Effect = 67
	TransitionHum5_20             Effect = 68
	TransitionHum6_10             Effect = 69
	RampDownLongSmooth1_100to0    Effect = 70
	RampDownLongSmooth2_100to0    Effect = 71
	RampDownMediumSmooth1_100to0  Effect = 72
	RampDownMediumSmooth2_100to0  Effect = 73
	RampDownShortSmooth1_100to0   Effect = 74
	RampDownShortSmooth2_100to0   Effect = 75
	RampDownLongSharp1_100to0     Effect = 76
	RampDownLongSharp2_100to0     Effect = 77
	RampDownMediumSharp1_100to0   Effect = 78
	RampDownMediumSharp2_100to0   Effect = 79
	RampDownShortSharp1_100to0    Effect = 80
	RampDownShortSharp2_100to0    Effect = 81
	RampUpLongSmooth1_0to100      Effect = 82
	RampUpLongSmooth2_0to100      Effect = 83
	RampUpMediumSmooth1_0to100    Effect = 84
	RampUpMediumSmooth2_0to100    Effect = 85
	RampUpShortSmooth1_0to100     Effect = 86
	RampUpShortSmooth2_0to100     Effect = 87
	RampUpLongSharp1_0to100       Effect = 88
	RampUpLongSharp2_0to100       Effect = 89
	RampUpMediumSharp1_0to100     Effect = 90
	RampUpMediumSharp2_0to100     Effect = 91
	RampUpShortSharp1_0to100      Effect = 92
	RampUpShortSharp2_0to100      Effect = 93
	RampDownLongSmooth1_50to0     Effect = 94
	RampDownLongSmooth2_50to0     Effect = 95
	RampDownMediumSmooth1_50to0   Effect = 96
	RampDownMediumSmooth2_50to0   Effect = 97
	RampDownShortSmooth1_50to0    Effect = 98
	RampDownShortSmooth2_50to0    Effect = 99
	RampDownLongSharp1_50to0      Effect = 100
	RampDownLongSharp2_50to0      Effect = 101
	RampDownMediumSharp1_50to0    Effect = 102
	RampDownMediumSharp2_50to0    Effect = 103
	RampDownShortSharp1_50to0     Effect = 104
	RampDownShortSharp2_50to0     Effect = 105
	RampUpLongSmooth1_0to50       Effect = 106
	RampUpLongSmooth2_0to50       Effect = 107
	RampUpMediumSmooth1_0to50     Effect = 108
	RampUpMediumSmooth2_0to50     Effect = 109
	RampUpShortSmooth1_0to50      Effect = 110
	RampUpShortSmooth2_0to50      Effect = 111
	RampUpLongSharp1_0to50        Effect = 112
	RampUpLongSharp2_0to50        Effect = 113
	RampUpMediumSharp1_0to50      Effect = 114
	RampUpMediumSharp2_0to50      Effect = 115
	RampUpShortSharp1_0to50       Effect = 116
	RampUpShortSharp2_0to50       Effect = 117
	LongBuzzProgrammaticStop100   Effect = 118
	SmoothHum1_50                 Effect = 119
	SmoothHum2_40                 Effect = 120
	SmoothHum3_30                 Effect = 121
	SmoothHum4_20                 Effect = 122
	SmoothHum5_10                 Effect = 123
)
