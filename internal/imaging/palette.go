package imaging

import "strings"

// ColorAdjustment is a named recolor target.
//
// A recolor replaces the hue and saturation of every visible pixel and scales
// its lightness, so an adjustment reads as "paint it this color":
//   - Hue: target hue in degrees. Values outside [0,360) wrap around.
//   - Saturation: target saturation (0 = gray, 1 = fully saturated).
//   - Brightness: lightness change in percent (-100 = black, 0 = unchanged).
type ColorAdjustment struct {
	Name       string  `json:"name"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Brightness int     `json:"brightness"`
}

// Palette is an ordered list of adjustments. Order only affects the order in
// which variants are produced.
type Palette []ColorAdjustment

// DefaultPalette returns the garment palette with title-case names
// ("White", "Black", ...). Each call returns a fresh copy.
func DefaultPalette() Palette {
	return Palette{
		{Name: "White", Hue: 0, Saturation: 0.0, Brightness: 0},
		{Name: "Black", Hue: 0, Saturation: 0.0, Brightness: -84},
		{Name: "Gray", Hue: 0, Saturation: 0.0, Brightness: -64},
		{Name: "Red", Hue: 0, Saturation: 0.6, Brightness: -40},
		{Name: "Green", Hue: 120, Saturation: 0.30, Brightness: -60},
		{Name: "Olive", Hue: 78, Saturation: 0.20, Brightness: -45},
		{Name: "Blue", Hue: 208, Saturation: 0.61, Brightness: -55},
		{Name: "Navy", Hue: 208, Saturation: 0.45, Brightness: -65},
		{Name: "Pink", Hue: 306, Saturation: 0.40, Brightness: 0},
		{Name: "Purple", Hue: 295, Saturation: 0.25, Brightness: -50},
	}
}

// Lowercase returns a copy of the palette with lowercased names.
func (p Palette) Lowercase() Palette {
	out := make(Palette, len(p))
	for i, a := range p {
		a.Name = strings.ToLower(a.Name)
		out[i] = a
	}
	return out
}

// Names returns the adjustment names in palette order.
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, a := range p {
		names[i] = a.Name
	}
	return names
}

// Lookup finds an adjustment by name, ignoring case.
func (p Palette) Lookup(name string) (ColorAdjustment, bool) {
	for _, a := range p {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return ColorAdjustment{}, false
}
