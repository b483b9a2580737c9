// Package spectrum implements parametric spectral upsampling: converting an
// sRGB color into a three-coefficient spectrum representation that, when
// evaluated across the visible range and integrated against the CIE
// matching functions and the D65 illuminant, reproduces the input color.
//
// The heavy lifting (fitting the lookup table) happens once; the hot-path
// Coefficients call only does a largest-channel lookup and a trilinear
// interpolation over the cached table.
package spectrum

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
)

const (
	// LambdaMin and LambdaMax bound the visible wavelength range (nm) the
	// spectrum is defined and integrated over.
	LambdaMin float32 = 360.0
	LambdaMax float32 = 830.0

	// DefaultResolution is R in the R^3 lookup cube.
	DefaultResolution = 64

	tableMagicComponents = 3 // r, g, b largest-channel sub-tables
	tableMagicCoeffs     = 3 // c0, c1, c2 per cell

	integrationSteps = 95 // ~5nm steps across [360, 830]
)

// Table is a persistable R^3 x 3-component lookup table of fitted spectrum
// coefficients, indexed by (largest-channel, x, y, z) where z tracks the
// largest channel's own normalized value and x/y track the other two
// channels normalized by it.
type Table struct {
	Resolution int
	// Data[c] holds Resolution^3 cells of 3 float32 coefficients each,
	// flattened in z-major, y-major, x-major order: idx = ((z*R+y)*R+x)*3+k.
	Data [tableMagicComponents][]float32
}

// NewTable allocates a zeroed table of the given resolution.
func NewTable(resolution int) *Table {
	t := &Table{Resolution: resolution}
	cells := resolution * resolution * resolution * tableMagicCoeffs
	for c := range t.Data {
		t.Data[c] = make([]float32, cells)
	}
	return t
}

func (t *Table) cellIndex(x, y, z int) int {
	r := t.Resolution
	return ((z*r+y)*r + x) * tableMagicCoeffs
}

func (t *Table) cell(component, x, y, z int) math.Vec3 {
	i := t.cellIndex(x, y, z)
	d := t.Data[component]
	return math.Vec3{X: d[i], Y: d[i+1], Z: d[i+2]}
}

func (t *Table) setCell(component, x, y, z int, v math.Vec3) {
	i := t.cellIndex(x, y, z)
	d := t.Data[component]
	d[i], d[i+1], d[i+2] = v.X, v.Y, v.Z
}

// Coefficients upsamples rgb (each component in [0,1]) into the three
// spectrum coefficients (c0, c1, c2) such that
// S(lambda) = sigmoid(c0*lambda^2 + c1*lambda + c2) reproduces rgb. Pure and
// total: out-of-range or all-zero input degrades gracefully rather than
// panicking or dividing by zero.
func Coefficients(t *Table, rgb math.Vec3) math.Vec3 {
	largest := 0
	vMax := rgb.X
	if rgb.Y > vMax {
		largest, vMax = 1, rgb.Y
	}
	if rgb.Z > vMax {
		largest, vMax = 2, rgb.Z
	}
	if vMax <= 1e-10 {
		return math.Vec3{}
	}

	var a, b float32
	switch largest {
	case 0:
		a, b = rgb.Y/vMax, rgb.Z/vMax
	case 1:
		a, b = rgb.X/vMax, rgb.Z/vMax
	default:
		a, b = rgb.X/vMax, rgb.Y/vMax
	}

	return t.trilinear(largest, math.Clamp(a, 0, 1), math.Clamp(b, 0, 1), math.Clamp(vMax, 0, 1))
}

// trilinear samples component's cube at normalized coordinates (x, y, z) in [0,1]^3.
func (t *Table) trilinear(component int, x, y, z float32) math.Vec3 {
	r := t.Resolution
	fx, fy, fz := x*float32(r-1), y*float32(r-1), z*float32(r-1)
	x0, y0, z0 := int(fx), int(fy), int(fz)
	x1, y1, z1 := math.Clamp(x0+1, 0, r-1), math.Clamp(y0+1, 0, r-1), math.Clamp(z0+1, 0, r-1)
	tx, ty, tz := fx-float32(x0), fy-float32(y0), fz-float32(z0)

	lerp := func(a, b math.Vec3, t float32) math.Vec3 {
		return a.MulScalar(1 - t).Add(b.MulScalar(t))
	}

	c000 := t.cell(component, x0, y0, z0)
	c100 := t.cell(component, x1, y0, z0)
	c010 := t.cell(component, x0, y1, z0)
	c110 := t.cell(component, x1, y1, z0)
	c001 := t.cell(component, x0, y0, z1)
	c101 := t.cell(component, x1, y0, z1)
	c011 := t.cell(component, x0, y1, z1)
	c111 := t.cell(component, x1, y1, z1)

	c00 := lerp(c000, c100, tx)
	c10 := lerp(c010, c110, tx)
	c01 := lerp(c001, c101, tx)
	c11 := lerp(c011, c111, tx)

	c0 := lerp(c00, c10, ty)
	c1 := lerp(c01, c11, ty)

	return lerp(c0, c1, tz)
}

// EvaluateSpectrum returns S(lambda) = sigmoid(c0*lambda^2 + c1*lambda + c2).
func EvaluateSpectrum(coeffs math.Vec3, lambda float32) float32 {
	x := coeffs.X*lambda*lambda + coeffs.Y*lambda + coeffs.Z
	return sigmoid(x)
}

func sigmoid(x float32) float32 {
	return 0.5 + x/(2*sqrt32(1+x*x))
}

// LoadOrBuild loads the persisted table at path, or builds and caches a new
// one at the given resolution if the file does not exist.
func LoadOrBuild(ctx context.Context, path string, resolution int) (*Table, error) {
	t, err := LoadTable(path)
	if err == nil {
		return t, nil
	}
	if !os.IsNotExist(err) {
		core.LogError("spectrum table %q malformed: %s", path, err.Error())
		return nil, err
	}
	core.LogInfo("%s not found, generating it", path)

	t, buildErr := BuildTable(ctx, resolution)
	if buildErr != nil {
		return nil, buildErr
	}
	if saveErr := t.Save(path); saveErr != nil {
		core.LogWarn("failed to cache spectrum table to %q: %s", path, saveErr.Error())
	}
	return t, nil
}

// LoadTable reads the little-endian binary persistence format: uint32
// resolution, then 3*R^3*3 float32 coefficients.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var resolution uint32
	if err := binary.Read(f, binary.LittleEndian, &resolution); err != nil {
		return nil, fmt.Errorf("reading spectrum table header: %w", core.ErrIO)
	}
	if resolution == 0 || resolution > 1024 {
		return nil, fmt.Errorf("spectrum table resolution %d out of range: %w", resolution, core.ErrIO)
	}

	t := NewTable(int(resolution))
	for c := 0; c < tableMagicComponents; c++ {
		if err := binary.Read(f, binary.LittleEndian, t.Data[c]); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				return nil, fmt.Errorf("spectrum table truncated: %w", core.ErrIO)
			}
			return nil, fmt.Errorf("reading spectrum table data: %w", core.ErrIO)
		}
	}
	return t, nil
}

// Save writes t to path in the format LoadTable reads.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, uint32(t.Resolution)); err != nil {
		return err
	}
	for c := 0; c < tableMagicComponents; c++ {
		if err := binary.Write(f, binary.LittleEndian, t.Data[c]); err != nil {
			return err
		}
	}
	return nil
}
