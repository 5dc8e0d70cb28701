package effects

import (
	"math"
	"testing"
)

func TestNewExciterValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ExciterOption
		wantErr bool
	}{
		{"defaults", nil, false},
		{"negative drive", []ExciterOption{WithExciterDrive(-0.1)}, true},
		{"zero saturation", []ExciterOption{WithExciterSaturation(0)}, true},
		{"mix above one", []ExciterOption{WithExciterMix(1.5)}, true},
		{"nan mix", []ExciterOption{WithExciterMix(math.NaN())}, true},
		{"custom", []ExciterOption{WithExciterDrive(0.5), WithExciterSaturation(2), WithExciterMix(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExciter(tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestExciterFormula(t *testing.T) {
	e, err := NewExciter()
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range []float64{-1, -0.5, -0.01, 0, 0.01, 0.25, 0.5, 1} {
		h := x * (1 + 0.1*math.Tanh(x*3))
		want := x + 0.3*(h-x)

		if got := e.ProcessSample(x); got != want {
			t.Fatalf("ProcessSample(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestExciterProperties(t *testing.T) {
	e, _ := NewExciter()

	if e.ProcessSample(0) != 0 {
		t.Fatal("silence must stay silent")
	}

	// tanh(3x) has the sign of x, so the exciter only ever adds level.
	for _, x := range []float64{-0.9, -0.1, 0.1, 0.9} {
		y := e.ProcessSample(x)
		if math.Abs(y) < math.Abs(x) || math.Signbit(y) != math.Signbit(x) {
			t.Fatalf("ProcessSample(%v) = %v", x, y)
		}

		if y+e.ProcessSample(-x) != 0 {
			t.Fatalf("exciter must be odd-symmetric at %v", x)
		}
	}
}

func TestExciterProcessVariantsAgree(t *testing.T) {
	e, _ := NewExciter(WithExciterMix(0.5))
	in := []float64{0.3, -0.7, 0.05, 0.99}

	out := e.Process(in)
	buf := append([]float64(nil), in...)
	e.ProcessInPlace(buf)

	for i := range in {
		if out[i] != buf[i] || out[i] != e.ProcessSample(in[i]) {
			t.Fatalf("index %d: %v %v", i, out[i], buf[i])
		}
	}

	if e.Drive() != 0.1 || e.Saturation() != 3 || e.Mix() != 0.5 {
		t.Fatal("unexpected accessor values")
	}
}
