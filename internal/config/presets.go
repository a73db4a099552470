package config

// Presets bundle parameter choices that work well for each source family.
// Chaotic maps decorrelate within a few steps, so they get short lag
// scans and early fit windows; oscillatory sources need the scan to reach
// past a quarter period.
var Presets = map[string]map[string]*Config{
	"logistic": {
		"quick": {
			Source: "logistic", Length: 2000, Dt: 1.0, Seed: DefaultSeed,
			Analysis: AnalysisConfig{
				MaxLag: 20, EmbedDim: 3, MinDim: 1, MaxDim: 3,
				Radius: 0.1, Theiler: 5, MaxSteps: 10, FitLo: 1, FitHi: 5,
				SampleSize: 200, HomologyDim: 1, MaxScale: 0.8,
			},
		},
		"full": {
			Source: "logistic", Length: 5000, Dt: 1.0, Seed: DefaultSeed,
			Analysis: AnalysisConfig{
				MaxLag: 50, EmbedDim: 3, MinDim: 1, MaxDim: 5,
				Radius: 0.1, Theiler: 10, MaxSteps: 15, FitLo: 1, FitHi: 6,
				SampleSize: 300, HomologyDim: 1, MaxScale: 1.0,
			},
		},
	},
	"henon": {
		"full": {
			Source: "henon", Length: 5000, Dt: 1.0, Seed: DefaultSeed,
			Analysis: AnalysisConfig{
				MaxLag: 30, EmbedDim: 3, MinDim: 1, MaxDim: 5,
				Radius: 0.2, Theiler: 10, MaxSteps: 12, FitLo: 1, FitHi: 6,
				SampleSize: 300, HomologyDim: 1, MaxScale: 1.0,
			},
		},
	},
	"sine": {
		"loop": {
			Source: "sine", Length: 4000, Dt: 1.0, Seed: DefaultSeed,
			Analysis: AnalysisConfig{
				MaxLag: 60, EmbedDim: 3, MinDim: 1, MaxDim: 3,
				Radius: 0.3, Theiler: 20, MaxSteps: 15, FitLo: 1, FitHi: 10,
				SampleSize: 250, HomologyDim: 1, MaxScale: 1.2,
			},
		},
	},
	"quasiperiodic": {
		"torus": {
			Source: "quasiperiodic", Length: 6000, Dt: 1.0, Seed: DefaultSeed,
			Analysis: AnalysisConfig{
				MaxLag: 80, EmbedDim: 3, MinDim: 1, MaxDim: 3,
				Radius: 0.3, Theiler: 25, MaxSteps: 15, FitLo: 1, FitHi: 10,
				SampleSize: 350, HomologyDim: 2, MaxScale: 1.2,
			},
		},
	},
	"noise": {
		"baseline": {
			Source: "noise", Length: 5000, Dt: 1.0, Seed: DefaultSeed,
			Analysis: AnalysisConfig{
				MaxLag: 30, EmbedDim: 3, MinDim: 1, MaxDim: 3,
				Radius: 0.4, Theiler: 5, MaxSteps: 10, FitLo: 1, FitHi: 5,
				SampleSize: 250, HomologyDim: 1, MaxScale: 1.0,
			},
		},
	},
}

func GetPreset(source, preset string) *Config {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	cfg, ok := sourcePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(source string) []string {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sourcePresets))
	for name := range sourcePresets {
		names = append(names, name)
	}
	return names
}
