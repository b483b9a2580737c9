package spectrum

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima/engine/math"
)

func approxEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}

func TestCoefficientsBlackIsZero(t *testing.T) {
	table := NewTable(4)
	c := Coefficients(table, math.Vec3{})
	if c.X != 0 || c.Y != 0 || c.Z != 0 {
		t.Errorf("black input should short-circuit to zero coefficients, got %v", c)
	}
}

func TestCoefficientsIsTotalForOutOfRangeInput(t *testing.T) {
	table := NewTable(4)
	// Values outside [0,1] must not panic or produce NaN/Inf.
	c := Coefficients(table, math.Vec3{X: 5, Y: -3, Z: 2})
	if c != c {
		t.Errorf("expected no NaN in coefficients for out-of-range input")
	}
}

func TestBuildTableFitsAchromaticCellsNearZeroSlope(t *testing.T) {
	table, err := BuildTable(context.Background(), 3)
	if err != nil {
		t.Fatalf("BuildTable failed: %s", err)
	}
	// The (a=1,b=1,vMax=1) white cell should fit close to a flat spectrum:
	// small curvature and linear terms relative to the constant term.
	white := table.cell(0, 2, 2, 2)
	if absf(white.X) > 1e-2 || absf(white.Y) > 1e-2 {
		t.Errorf("expected near-flat spectrum for white, got coeffs %v", white)
	}
}

func TestBuildTableRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BuildTable(ctx, 8); err == nil {
		t.Errorf("expected BuildTable to report a canceled context")
	}
}

func TestTableSaveLoadRoundTrip(t *testing.T) {
	table, err := BuildTable(context.Background(), 3)
	if err != nil {
		t.Fatalf("BuildTable failed: %s", err)
	}

	path := filepath.Join(t.TempDir(), "sRGBSpectrumTable.dat")
	if err := table.Save(path); err != nil {
		t.Fatalf("Save failed: %s", err)
	}

	loaded, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable failed: %s", err)
	}
	if loaded.Resolution != table.Resolution {
		t.Errorf("resolution mismatch: have %d, want %d", loaded.Resolution, table.Resolution)
	}
	for c := range table.Data {
		for i := range table.Data[c] {
			if !approxEqual(table.Data[c][i], loaded.Data[c][i], 1e-6) {
				t.Errorf("round-tripped coefficient mismatch at component %d index %d: have %f, want %f",
					c, i, loaded.Data[c][i], table.Data[c][i])
			}
		}
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.dat"))
	if err == nil {
		t.Errorf("expected an error loading a nonexistent table")
	}
}

func TestLoadTableTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.dat")
	if err := os.WriteFile(path, []byte{4, 0, 0, 0, 1, 2}, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %s", err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Errorf("expected an error loading a truncated table")
	}
}

func TestLoadOrBuildGeneratesWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sRGBSpectrumTable.dat")
	table, err := LoadOrBuild(context.Background(), path, 3)
	if err != nil {
		t.Fatalf("LoadOrBuild failed: %s", err)
	}
	if table.Resolution != 3 {
		t.Errorf("expected generated table resolution 3, got %d", table.Resolution)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected LoadOrBuild to cache the table to disk: %s", err)
	}
}

func TestEvaluateSpectrumStaysInRange(t *testing.T) {
	coeffs := math.Vec3{X: 0.0001, Y: -0.01, Z: 2}
	for lambda := LambdaMin; lambda <= LambdaMax; lambda += 10 {
		v := EvaluateSpectrum(coeffs, lambda)
		if v < 0 || v > 1 {
			t.Errorf("spectrum value out of [0,1] at lambda=%f: %f", lambda, v)
		}
	}
}
