package engine

// Settings contains the pipeline tunables, loadable from a YAML file by the
// command-line front-end.
type Settings struct {
	// Seed seeds the farthest-point diagram's randomized hull permutation.
	Seed int64 `yaml:"seed"`

	// InsertDelayMs paces successive farthest-point insertions, for an
	// external viewer. 0 (the default) runs headless, full speed.
	InsertDelayMs int `yaml:"insertDelayMs"`

	// Log enables progress logging and per-stage timers.
	Log bool `yaml:"log"`
}

// NewSettings returns a Settings struct filled with default values.
func NewSettings() Settings {
	return Settings{
		Seed:          1,
		InsertDelayMs: 0,
		Log:           false,
	}
}
