package config

// Embedded configuration.
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: board ID
// Val: raw JSON bytes for that board

const cfgPico = `{
  "haptics": {
    "motor": "erm",
    "calibration": "auto"
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
}
