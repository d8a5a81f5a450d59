package compute

import (
	"fmt"

	"github.com/san-kum/polysim/internal/poly"
)

type Backend interface {
	Name() string
	Available() bool
	Workers() int
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

// SetBackend releases the active backend and installs b. An unavailable
// backend is refused and the active one kept.
func SetBackend(b Backend) error {
	if b == nil || !b.Available() {
		return fmt.Errorf("compute backend not available")
	}
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
	return nil
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	return NewCPUBackend(0)
}

// GridSize returns span^n, or an error once it passes limit.
func GridSize(n, span, limit int) (int, error) {
	if span <= 0 {
		return 0, fmt.Errorf("span must be positive, got %d", span)
	}
	size := 1
	for i := 0; i < n; i++ {
		size *= span
		if size > limit {
			return 0, fmt.Errorf("%d variables over span %d exceeds %d points", n, span, limit)
		}
	}
	return size, nil
}

// Point decodes the linear grid index i into n coordinates in [0, span),
// last coordinate fastest.
func Point(i, n, span int) []int {
	pt := make([]int, n)
	for k := n - 1; k >= 0; k-- {
		pt[k] = i % span
		i /= span
	}
	return pt
}

// EvalGrid evaluates p at every point of [0, span)^len(vars). lift maps a
// grid coordinate into the ring of p. Results are indexed like Point.
func EvalGrid[T any](b Backend, p poly.Polynomial[T], vars []string, span, limit int, lift func(int64) T) ([]T, error) {
	size, err := GridSize(len(vars), span, limit)
	if err != nil {
		return nil, err
	}

	out := make([]T, size)
	eval := func(start, end int) error {
		for i := start; i < end; i++ {
			pt := Point(i, len(vars), span)
			vals := make(map[string]T, len(vars))
			for k, v := range vars {
				vals[v] = lift(int64(pt[k]))
			}
			y, err := p.Eval(vals)
			if err != nil {
				return err
			}
			out[i] = y
		}
		return nil
	}

	workers := 1
	if b != nil {
		workers = b.Workers()
	}
	if workers <= 1 || size < 64 {
		err = eval(0, size)
	} else {
		err = parallelChunks(size, workers, eval)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
