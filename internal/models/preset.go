package models

// Preset is a named primary/accent pair offered by the customizer as a
// one-click choice. Presets are fixed and never stored.
type Preset struct {
	Name    string `json:"name"`
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

var presets = []Preset{
	{Name: "Blue", Primary: DefaultPrimary, Accent: DefaultAccent},
	{Name: "Purple", Primary: "#9333ea", Accent: "#ec4899"},
	{Name: "Green", Primary: "#16a34a", Accent: "#06b6d4"},
	{Name: "Rose", Primary: "#e11d48", Accent: "#f97316"},
}

// Presets returns a copy of the built-in presets.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}
