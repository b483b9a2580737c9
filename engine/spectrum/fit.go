package spectrum

import (
	"context"
	"fmt"
	"math"

	enginemath "github.com/spaghettifunk/anima/engine/math"
)

// BuildTable fits a fresh lookup table at the given resolution by solving,
// for every cell of every largest-channel cube, the spectrum coefficients
// that reconstruct that cell's target color under the CIE 1931 standard
// observer and the D65 illuminant. There is no closed form for this: each
// cell is a small nonlinear least-squares problem solved with Gauss-Newton.
//
// This is the one expensive, one-time path; callers are expected to cache
// the result via Table.Save and prefer LoadOrBuild on subsequent runs.
func BuildTable(ctx context.Context, resolution int) (*Table, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("spectrum table resolution must be >= 2, got %d", resolution)
	}
	t := NewTable(resolution)

	for component := 0; component < tableMagicComponents; component++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for z := 0; z < resolution; z++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			vMax := float32(z) / float32(resolution-1)
			// Warm-start each row from its neighbor along x: the solution
			// surface is smooth, so the previous cell's coefficients are a
			// good initial guess and keep Gauss-Newton converging in a
			// handful of iterations.
			guess := enginemath.Vec3{}
			for y := 0; y < resolution; y++ {
				b := float32(y) / float32(resolution-1)
				for x := 0; x < resolution; x++ {
					a := float32(x) / float32(resolution-1)
					target := targetColor(component, a, b, vMax)
					coeffs, err := fitCoefficients(target, guess)
					if err != nil {
						coeffs = guess
					}
					t.setCell(component, x, y, z, coeffs)
					guess = coeffs
				}
			}
		}
	}
	return t, nil
}

// targetColor reconstructs the rgb color a cell's (a, b, vMax) grid
// coordinates represent, inverse to the normalization Coefficients applies.
func targetColor(component int, a, b, vMax float32) enginemath.Vec3 {
	switch component {
	case 0:
		return enginemath.Vec3{X: vMax, Y: a * vMax, Z: b * vMax}
	case 1:
		return enginemath.Vec3{X: a * vMax, Y: vMax, Z: b * vMax}
	default:
		return enginemath.Vec3{X: a * vMax, Y: b * vMax, Z: vMax}
	}
}

// fitCoefficients runs Gauss-Newton with a numerical (finite-difference)
// Jacobian to find spectrum coefficients reproducing target under
// reconstruct. initial seeds the search; the zero vector is a fine seed for
// a dark target.
func fitCoefficients(target, initial enginemath.Vec3) (enginemath.Vec3, error) {
	const (
		maxIterations = 30
		step          = 1e-3
		damping       = 1e-4
	)

	c := initial
	residual := reconstruct(c).Sub(target)
	for iter := 0; iter < maxIterations; iter++ {
		if residual.LengthSquared() < 1e-10 {
			break
		}

		jacobian := numericalJacobian(c, step)
		delta, err := solveNormalEquations(jacobian, residual, damping)
		if err != nil {
			return c, err
		}

		next := c.Sub(delta)
		nextResidual := reconstruct(next).Sub(target)
		if nextResidual.LengthSquared() > residual.LengthSquared() {
			// Overshot; halve the step instead of diverging.
			next = c.Sub(delta.MulScalar(0.5))
			nextResidual = reconstruct(next).Sub(target)
		}
		c, residual = next, nextResidual
	}
	return c, nil
}

// jacobian3 is the 3x3 (d reconstruct_i / d c_j) matrix, rows = output
// channel, columns = coefficient.
type jacobian3 [3]enginemath.Vec3

func numericalJacobian(c enginemath.Vec3, h float32) jacobian3 {
	base := reconstruct(c)
	dx := reconstruct(enginemath.Vec3{X: c.X + h, Y: c.Y, Z: c.Z}).Sub(base).MulScalar(1 / h)
	dy := reconstruct(enginemath.Vec3{X: c.X, Y: c.Y + h, Z: c.Z}).Sub(base).MulScalar(1 / h)
	dz := reconstruct(enginemath.Vec3{X: c.X, Y: c.Y, Z: c.Z + h}).Sub(base).MulScalar(1 / h)
	// Columns are per-coefficient; store transposed (rows = channel) for
	// solveNormalEquations's convenience.
	return jacobian3{
		{X: dx.X, Y: dy.X, Z: dz.X},
		{X: dx.Y, Y: dy.Y, Z: dz.Y},
		{X: dx.Z, Y: dy.Z, Z: dz.Z},
	}
}

// solveNormalEquations solves (J^T J + damping*I) delta = J^T residual for a
// 3x3 system via Gaussian elimination with partial pivoting.
func solveNormalEquations(j jacobian3, residual enginemath.Vec3, damping float32) (enginemath.Vec3, error) {
	var jtj [3][3]float32
	var jtr [3]float32
	rows := [3]enginemath.Vec3{j[0], j[1], j[2]}
	res := [3]float32{residual.X, residual.Y, residual.Z}

	for a := 0; a < 3; a++ {
		rowA := [3]float32{rows[a].X, rows[a].Y, rows[a].Z}
		for b := 0; b < 3; b++ {
			rowB := [3]float32{rows[b].X, rows[b].Y, rows[b].Z}
			jtj[a][b] = rowA[0]*rowB[0] + rowA[1]*rowB[1] + rowA[2]*rowB[2]
		}
		jtj[a][a] += damping
		jtr[a] = rowA[0]*res[0] + rowA[1]*res[1] + rowA[2]*res[2]
	}

	return gaussianSolve3(jtj, jtr)
}

func gaussianSolve3(a [3][3]float32, b [3]float32) (enginemath.Vec3, error) {
	const epsilon = 1e-12
	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if absf(a[row][col]) > absf(a[pivot][col]) {
				pivot = row
			}
		}
		if absf(a[pivot][col]) < epsilon {
			return enginemath.Vec3{}, fmt.Errorf("singular system during spectrum fit")
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < 3; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < 3; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	var x [3]float32
	for row := 2; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < 3; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return enginemath.Vec3{X: x[0], Y: x[1], Z: x[2]}, nil
}

// reconstruct integrates the candidate spectrum against the CIE matching
// functions and the D65 illuminant and converts the resulting tristimulus
// value to linear sRGB, for comparison against a fit target.
func reconstruct(coeffs enginemath.Vec3) enginemath.Vec3 {
	var X, Y, Z, normalization float32
	step := (LambdaMax - LambdaMin) / float32(integrationSteps-1)

	for i := 0; i < integrationSteps; i++ {
		lambda := LambdaMin + float32(i)*step
		illum := illuminantD65(lambda)
		xBar, yBar, zBar := cieMatchingFunctions(lambda)

		X += EvaluateSpectrum(coeffs, lambda) * illum * xBar
		Y += EvaluateSpectrum(coeffs, lambda) * illum * yBar
		Z += EvaluateSpectrum(coeffs, lambda) * illum * zBar
		normalization += illum * yBar
	}
	if normalization <= 0 {
		return enginemath.Vec3{}
	}
	X, Y, Z = X/normalization, Y/normalization, Z/normalization
	return xyzToLinearSRGB(X, Y, Z)
}

// cieMatchingFunctions is a multi-lobe Gaussian analytic approximation of
// the CIE 1931 standard observer (Wyman, Sloan & Shirley), accurate enough
// for this fit without shipping a sampled table.
func cieMatchingFunctions(lambda float32) (x, y, z float32) {
	gauss := func(t, invSigma float32) float32 {
		v := t * invSigma
		return float32(math.Exp(float64(-0.5 * v * v)))
	}

	t1 := lambda - 442.0
	t1 *= ifElse(lambda < 442.0, 0.0624, 0.0374)
	t2 := lambda - 599.8
	t2 *= ifElse(lambda < 599.8, 0.0264, 0.0323)
	t3 := lambda - 501.1
	t3 *= ifElse(lambda < 501.1, 0.0490, 0.0382)
	x = 0.362*gauss(t1, 1) + 1.056*gauss(t2, 1) - 0.065*gauss(t3, 1)

	t1 = lambda - 568.8
	t1 *= ifElse(lambda < 568.8, 0.0213, 0.0247)
	t2 = lambda - 530.9
	t2 *= ifElse(lambda < 530.9, 0.0613, 0.0322)
	y = 0.821*gauss(t1, 1) + 0.286*gauss(t2, 1)

	t1 = lambda - 437.0
	t1 *= ifElse(lambda < 437.0, 0.0845, 0.0278)
	t2 = lambda - 459.0
	t2 *= ifElse(lambda < 459.0, 0.0385, 0.0725)
	z = 1.217*gauss(t1, 1) + 0.681*gauss(t2, 1)
	return
}

// illuminantD65 approximates the relative spectral power distribution of
// the D65 standard illuminant with a smooth analytic surrogate (a mild
// blackbody-like curve normalized to 1 at 560nm), sufficient for producing
// a self-consistent fitted table without shipping the full sampled curve.
func illuminantD65(lambda float32) float32 {
	const peak = 560.0
	const width = 380.0
	d := (lambda - peak) / width
	return float32(1.0 - 0.35*math.Abs(float64(d)))
}

// xyzToLinearSRGB applies the standard CIE XYZ (D65) -> linear sRGB matrix.
func xyzToLinearSRGB(x, y, z float32) enginemath.Vec3 {
	return enginemath.Vec3{
		X: 3.2406*x - 1.5372*y - 0.4986*z,
		Y: -0.9689*x + 1.8758*y + 0.0415*z,
		Z: 0.0557*x - 0.2040*y + 1.0570*z,
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func ifElse(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
