package config

var Presets = map[string]*Config{
	"dimer": {
		Dt: 0.005, Steps: 2000,
		Box:        BoxConfig{Lx: 15, Ly: 15, Lz: 15},
		Bodies:     BodyConfig{Count: 32, Sites: 1, Spacing: 0.5},
		ForceField: FieldConfig{Name: "trap", K: 1.0},
		Sizing:     SizingConfig{BodiesPerGroup: 8},
	},
	"rod": {
		Dt: 0.002, Steps: 5000,
		Box:        BoxConfig{Lx: 30, Ly: 30, Lz: 30},
		Bodies:     BodyConfig{Count: 64, Sites: 5, Spacing: 0.4},
		ForceField: FieldConfig{Name: "trap", K: 0.5},
		Sizing:     SizingConfig{BodiesPerGroup: 4},
	},
	"dense": {
		Dt: 0.001, Steps: 1000,
		Box:        BoxConfig{Lx: 12, Ly: 12, Lz: 12},
		Bodies:     BodyConfig{Count: 128, Sites: 3, Spacing: 0.4, Free: 64},
		ForceField: FieldConfig{Name: "softsphere", K: 10.0},
		Sizing:     SizingConfig{BodiesPerGroup: 4},
	},
	"drift": {
		Dt: 0.005, Steps: 10000,
		Box:        BoxConfig{Lx: 40, Ly: 40, Lz: 40},
		Bodies:     BodyConfig{Count: 16, Sites: 3, Spacing: 0.5},
		ForceField: FieldConfig{Name: "gravity", K: 0.1},
		Sizing:     SizingConfig{BodiesPerGroup: 2},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
