package mandel

import (
	"fmt"
	"math"
	"sort"
)

// GenerationParameters describes one viewport to sample.
// Width and Height are in pixels, Scale is the size of one pixel in
// complex-plane units.
type GenerationParameters struct {
	CenterX       float64 `json:"centerX" toml:"center_x" yaml:"center_x"`
	CenterY       float64 `json:"centerY" toml:"center_y" yaml:"center_y"`
	Width         int     `json:"width" toml:"width" yaml:"width"`
	Height        int     `json:"height" toml:"height" yaml:"height"`
	Scale         float64 `json:"scale" toml:"scale" yaml:"scale"`
	MaxIterations int     `json:"maxIterations" toml:"max_iterations" yaml:"max_iterations"`
	Bound         float64 `json:"bound" toml:"bound" yaml:"bound"`
	Power         int     `json:"power" toml:"power" yaml:"power"`
}

// DefaultParameters matches the defaults of the mandel command.
var DefaultParameters = GenerationParameters{
	CenterX:       -0.5,
	CenterY:       0,
	Width:         300,
	Height:        200,
	Scale:         0.0075,
	MaxIterations: 100,
	Bound:         2,
	Power:         2,
}

// Geometry is the sampling grid derived from GenerationParameters.
// MinX, MaxX, MinY and MaxY are the coordinates of the outermost pixel
// centers, half a pixel inside the viewport edges.
type Geometry struct {
	Scale      float64
	ViewWidth  float64
	ViewHeight float64
	MinX, MaxX float64
	MinY, MaxY float64
}

// Geometry derives the grid. Pixel (0,0) sits at (MinX, MaxY) and pixel
// (Width-1, Height-1) at (MaxX, MinY). MaxX and MinY are computed with X
// and Y, so they equal the coordinates of the last column and row bit for bit.
func (p GenerationParameters) Geometry() Geometry {
	viewWidth := float64(p.Width) * p.Scale
	viewHeight := float64(p.Height) * p.Scale
	half := p.Scale / 2

	g := Geometry{
		Scale:      p.Scale,
		ViewWidth:  viewWidth,
		ViewHeight: viewHeight,
		MinX:       p.CenterX - viewWidth/2 + half,
		MaxY:       p.CenterY + viewHeight/2 - half,
	}
	g.MaxX = g.X(p.Width - 1)
	g.MinY = g.Y(p.Height - 1)
	return g
}

// X returns the real coordinate of column col.
func (g Geometry) X(col int) float64 {
	return g.MinX + float64(col)*g.Scale
}

// Y returns the imaginary coordinate of row row. Row 0 is the top (max Y).
func (g Geometry) Y(row int) float64 {
	return g.MaxY - float64(row)*g.Scale
}

// Points returns the number of grid cells.
func (p GenerationParameters) Points() int {
	return p.Width * p.Height
}

// Validate reports the first violated parameter invariant.
func (p GenerationParameters) Validate() error {
	finite := []struct {
		field string
		v     float64
	}{
		{"centerX", p.CenterX},
		{"centerY", p.CenterY},
		{"scale", p.Scale},
		{"bound", p.Bound},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return paramErrorf(f.field, "must be finite, got %v", f.v)
		}
	}

	switch {
	case p.Width <= 0:
		return paramErrorf("width", "must be positive, got %d", p.Width)
	case p.Height <= 0:
		return paramErrorf("height", "must be positive, got %d", p.Height)
	case p.Scale <= 0:
		return paramErrorf("scale", "must be positive, got %v", p.Scale)
	case p.MaxIterations <= 0:
		return paramErrorf("maxIterations", "must be positive, got %d", p.MaxIterations)
	case p.Bound <= 0:
		return paramErrorf("bound", "must be positive, got %v", p.Bound)
	case p.Bound*p.Bound == 0:
		return paramErrorf("bound", "%v is too small, its square underflows to zero", p.Bound)
	case p.Power < 1:
		return paramErrorf("power", "must be at least 1, got %d", p.Power)
	}

	if p.Height > math.MaxInt/p.Width {
		return paramErrorf("width", "grid %dx%d is too large", p.Width, p.Height)
	}

	g := p.Geometry()
	for _, v := range []float64{g.MinX, g.MaxX, g.MinY, g.MaxY} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return paramErrorf("scale", "viewport %v at scale %v overflows", p.Width, p.Scale)
		}
	}

	return nil
}

// SamplePoint is one evaluated grid cell.
type SamplePoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Iterations int     `json:"iterations"`
}

// Metadata echoes the parameters together with the derived grid.
type Metadata struct {
	CenterX       float64 `json:"centerX"`
	CenterY       float64 `json:"centerY"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Scale         float64 `json:"scale"`
	MaxIterations int     `json:"maxIterations"`
	Bound         float64 `json:"bound"`
	Power         int     `json:"power"`
	NumX          int     `json:"numX"`
	NumY          int     `json:"numY"`
	MinX          float64 `json:"minX"`
	MaxX          float64 `json:"maxX"`
	MinY          float64 `json:"minY"`
	MaxY          float64 `json:"maxY"`
}

// NewMetadata builds Metadata for p.
func NewMetadata(p GenerationParameters) Metadata {
	g := p.Geometry()
	return Metadata{
		CenterX:       p.CenterX,
		CenterY:       p.CenterY,
		Width:         p.Width,
		Height:        p.Height,
		Scale:         p.Scale,
		MaxIterations: p.MaxIterations,
		Bound:         p.Bound,
		Power:         p.Power,
		NumX:          p.Width,
		NumY:          p.Height,
		MinX:          g.MinX,
		MaxX:          g.MaxX,
		MinY:          g.MinY,
		MaxY:          g.MaxY,
	}
}

// Parameters recovers the generation parameters from m.
func (m Metadata) Parameters() GenerationParameters {
	return GenerationParameters{
		CenterX:       m.CenterX,
		CenterY:       m.CenterY,
		Width:         m.Width,
		Height:        m.Height,
		Scale:         m.Scale,
		MaxIterations: m.MaxIterations,
		Bound:         m.Bound,
		Power:         m.Power,
	}
}

// Dataset is the result of one generation. Points are row-major:
// top row (max Y) first, each row left to right (min X first).
type Dataset struct {
	Metadata Metadata      `json:"metadata"`
	Points   []SamplePoint `json:"points"`
}

// At returns the point at column col of row row.
func (d *Dataset) At(col, row int) SamplePoint {
	return d.Points[row*d.Metadata.NumX+col]
}

// Region is a rectangle of the complex plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Fit centers p on the region and picks the scale that spans the region's
// horizontal extent with p.Width pixels. The vertical extent follows from
// p.Height.
func (r Region) Fit(p GenerationParameters) (GenerationParameters, error) {
	if p.Width <= 0 {
		return GenerationParameters{}, paramErrorf("width", "must be positive, got %d", p.Width)
	}
	if r.Xmax <= r.Xmin || r.Ymax <= r.Ymin {
		return GenerationParameters{}, paramErrorf("region", "empty region %+v", r)
	}

	p.CenterX = (r.Xmin + r.Xmax) / 2
	p.CenterY = (r.Ymin + r.Ymax) / 2
	p.Scale = (r.Xmax - r.Xmin) / float64(p.Width)
	return p, nil
}

// Well known landmarks, addressable by name through LookupRegion.
var (
	// SeahorseValley lies between the main cardioid and the period-2 bulb.
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// ElephantValley sits just below the real axis near -1.8.
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// SpiralMinibrot frames a small copy of the set with spiral arms.
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// TripleSpiral has threefold spirals.
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// MinibrotInMiniSpiral is a copy of the set inside a spiral arm.
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var regions = map[string]Region{
	"seahorse-valley":         SeahorseValley,
	"elephant-valley":         ElephantValley,
	"spiral-minibrot":         SpiralMinibrot,
	"triple-spiral":           TripleSpiral,
	"valley-of-the-dragon":    ValleyOfTheDragon,
	"minibrot-in-mini-spiral": MinibrotInMiniSpiral,
}

// LookupRegion finds a landmark by its kebab-case name.
func LookupRegion(name string) (Region, error) {
	r, ok := regions[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q (known: %v): %w", name, RegionNames(), ErrInvalidParameter)
	}
	return r, nil
}

// RegionNames lists the landmark names in sorted order.
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for n := range regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
