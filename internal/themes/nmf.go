package themes

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// eps keeps the multiplicative-update denominators away from zero.
const eps = 1e-9

// collapseTol marks a component as collapsed when its share of the matrix
// mass falls below this fraction.
const collapseTol = 1e-6

// factorise approximates v (terms x docs) as w (terms x k) * h (k x docs)
// with non-negative factors, using Lee-Seung multiplicative updates. The
// factor matrices are initialised from the given seed, so identical input
// and seed produce identical factors. Returns nil when v carries no mass.
func factorise(v *mat.Dense, k, iterations int, seed int64) (*mat.Dense, *mat.Dense) {
	t, d := v.Dims()
	if t == 0 || d == 0 || k <= 0 {
		return nil, nil
	}

	var total float64
	for i := 0; i < t; i++ {
		for j := 0; j < d; j++ {
			total += v.At(i, j)
		}
	}
	if total == 0 {
		return nil, nil
	}

	// Scale the random init so w*h starts in the same magnitude range as v.
	scale := math.Sqrt(total / float64(t*d) / float64(k))
	rnd := rand.New(rand.NewSource(seed))

	w := mat.NewDense(t, k, nil)
	h := mat.NewDense(k, d, nil)
	for i := 0; i < t; i++ {
		for j := 0; j < k; j++ {
			w.Set(i, j, scale*(rnd.Float64()+eps))
		}
	}
	for i := 0; i < k; i++ {
		for j := 0; j < d; j++ {
			h.Set(i, j, scale*(rnd.Float64()+eps))
		}
	}

	// Multiplicative updates preserve zeros, so a component whose factors
	// decay toward zero can never recover on its own. Reseed collapsed
	// components from the same source during the early part of the run,
	// leaving the tail of the iterations to converge undisturbed.
	reseedUntil := iterations - iterations/4

	// Distinct temporaries per product shape so gonum can reuse their
	// backing arrays across iterations.
	var wtv, wGram, hDen, vht, hGram, wDen mat.Dense
	for iter := 0; iter < iterations; iter++ {
		// h <- h .* (wT v) ./ (wT w h)
		wtv.Mul(w.T(), v)
		wGram.Mul(w.T(), w)
		hDen.Mul(&wGram, h)
		hadamardUpdate(h, &wtv, &hDen)

		// w <- w .* (v hT) ./ (w h hT)
		vht.Mul(v, h.T())
		hGram.Mul(h, h.T())
		wDen.Mul(w, &hGram)
		hadamardUpdate(w, &vht, &wDen)

		if iter < reseedUntil && (iter+1)%10 == 0 {
			reseedCollapsed(w, h, rnd, scale, total)
		}
	}

	return w, h
}

// reseedCollapsed reinitialises every component whose combined factor mass
// has fallen below collapseTol of the matrix mass. Draws come from the same
// seeded source, so the run stays deterministic.
func reseedCollapsed(w, h *mat.Dense, rnd *rand.Rand, scale, total float64) {
	t, k := w.Dims()
	_, d := h.Dims()

	for j := 0; j < k; j++ {
		var wMass, hMass float64
		for i := 0; i < t; i++ {
			wMass += w.At(i, j)
		}
		for i := 0; i < d; i++ {
			hMass += h.At(j, i)
		}
		if wMass*hMass >= collapseTol*total {
			continue
		}

		for i := 0; i < t; i++ {
			w.Set(i, j, scale*(rnd.Float64()+eps))
		}
		for i := 0; i < d; i++ {
			h.Set(j, i, scale*(rnd.Float64()+eps))
		}
	}
}

// hadamardUpdate performs m <- m .* num ./ (den + eps) element-wise.
func hadamardUpdate(m, num, den *mat.Dense) {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, m.At(i, j)*num.At(i, j)/(den.At(i, j)+eps))
		}
	}
}
