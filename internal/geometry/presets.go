package geometry

import "math"

// RatioID identifies an aspect-ratio preset for export images
type RatioID string

// ResolutionID identifies a pixel-density preset for export images
type ResolutionID string

const (
	RatioScreen        RatioID = "SCREEN" // custom: pass dimensions through unchanged
	RatioFourByThree   RatioID = "FOUR_BY_THREE"
	RatioSixteenByNine RatioID = "SIXTEEN_BY_NINE"

	ResolutionOneX ResolutionID = "ONE_X"
	ResolutionTwoX ResolutionID = "TWO_X"
)

// RatioPreset maps dimensions to a final width/height honoring a fixed aspect
// ratio. The SCREEN variant is the "custom" preset and passes dimensions
// through unchanged.
type RatioPreset interface {
	ID() RatioID
	Label() string
	Compute(width, height int) (int, int)
	// Custom reports whether output is not a simple multiple of the source
	Custom() bool
}

// ResolutionPreset maps base dimensions to scaled pixel dimensions and
// carries the scale factor relative to the source surface.
type ResolutionPreset interface {
	ID() ResolutionID
	Label() string
	Compute(width, height int) (int, int)
	Scale() float64
}

type ratioPreset struct {
	id     RatioID
	label  string
	custom bool
	// height as a fraction of width; ignored when custom
	heightFactor float64
}

func (r ratioPreset) ID() RatioID   { return r.id }
func (r ratioPreset) Label() string { return r.label }
func (r ratioPreset) Custom() bool  { return r.custom }

func (r ratioPreset) Compute(width, height int) (int, int) {
	if r.custom {
		return width, height
	}
	// Round and clamp so tiny positive sources never collapse to a
	// zero-height output
	computed := int(math.Round(float64(width) * r.heightFactor))
	if computed < 1 {
		computed = 1
	}
	return width, computed
}

type resolutionPreset struct {
	id    ResolutionID
	label string
	scale float64
}

func (p resolutionPreset) ID() ResolutionID { return p.id }
func (p resolutionPreset) Label() string    { return p.label }
func (p resolutionPreset) Scale() float64   { return p.scale }

func (p resolutionPreset) Compute(width, height int) (int, int) {
	return int(float64(width) * p.scale), int(float64(height) * p.scale)
}

// Registry holds the fixed preset enumerations and the defaults used when a
// caller names an unknown preset. Callers pass it by reference instead of
// relying on process-wide lookup.
type Registry struct {
	ratios            []RatioPreset
	resolutions       []ResolutionPreset
	defaultRatio      RatioID
	defaultResolution ResolutionID
}

// NewRegistry returns the standard preset set: screen/4:3/16:9 ratios and
// 1x/2x resolutions, defaulting to 4:3 at 1x.
func NewRegistry() *Registry {
	return &Registry{
		ratios: []RatioPreset{
			ratioPreset{id: RatioScreen, label: "Original Screen", custom: true},
			ratioPreset{id: RatioFourByThree, label: "4:3", heightFactor: 0.75},
			ratioPreset{id: RatioSixteenByNine, label: "16:9", heightFactor: 0.5625},
		},
		resolutions: []ResolutionPreset{
			resolutionPreset{id: ResolutionOneX, label: "1x", scale: 1},
			resolutionPreset{id: ResolutionTwoX, label: "2x", scale: 2},
		},
		defaultRatio:      RatioFourByThree,
		defaultResolution: ResolutionOneX,
	}
}

// Ratio resolves a ratio preset by ID, falling back to the default preset
// when the ID is unknown.
func (r *Registry) Ratio(id RatioID) RatioPreset {
	var fallback RatioPreset
	for _, p := range r.ratios {
		if p.ID() == id {
			return p
		}
		if p.ID() == r.defaultRatio {
			fallback = p
		}
	}
	return fallback
}

// Resolution resolves a resolution preset by ID, falling back to the default
// preset when the ID is unknown.
func (r *Registry) Resolution(id ResolutionID) ResolutionPreset {
	var fallback ResolutionPreset
	for _, p := range r.resolutions {
		if p.ID() == id {
			return p
		}
		if p.ID() == r.defaultResolution {
			fallback = p
		}
	}
	return fallback
}

// Ratios returns the ratio presets in enumeration order.
func (r *Registry) Ratios() []RatioPreset { return r.ratios }

// Resolutions returns the resolution presets in enumeration order.
func (r *Registry) Resolutions() []ResolutionPreset { return r.resolutions }
