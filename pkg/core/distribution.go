package core

import (
	"math"
	"sort"
)

// make1D normalizes pdf and its cumulative sum cdf in place, returning the
// pre-normalization sum. A non-positive sum leaves both arrays at zero and
// logs a warning: the distribution is degenerate and must not be sampled.
func make1D(logger Logger, pdf, cdf []float64) float64 {
	cdf[0] = pdf[0]
	for i := 1; i < len(cdf); i++ {
		cdf[i] = cdf[i-1] + pdf[i]
	}

	total := cdf[len(cdf)-1]
	if math.IsNaN(total) || math.IsInf(total, 0) {
		panic("distribution has non-finite values")
	}
	if total <= 0 {
		if logger != nil {
			logger.Printf("warning: distribution is null and should not be sampled")
		}
		for i := range pdf {
			pdf[i] = 0
		}
		for i := range cdf {
			cdf[i] = 0
		}
		return 0
	}

	for i := range pdf {
		pdf[i] /= total
	}
	for i := range cdf {
		cdf[i] /= total
	}
	return total
}

// sample1D inverse-CDF samples a 1D distribution via binary search.
func sample1D(pdf, cdf []float64, u float64) (int, float64) {
	i := sort.SearchFloat64s(cdf, u)
	if i >= len(pdf) {
		i = len(pdf) - 1
	}
	return i, pdf[i]
}

// Distribution1D is an immutable, normalized, importance-samplable 1D
// discrete distribution built from non-negative weights.
type Distribution1D struct {
	pdf, cdf []float64
}

// NewDistribution1D builds a Distribution1D from the given weights.
func NewDistribution1D(logger Logger, weights []float64) *Distribution1D {
	pdf := append([]float64(nil), weights...)
	cdf := make([]float64, len(pdf))
	make1D(logger, pdf, cdf)
	return &Distribution1D{pdf: pdf, cdf: cdf}
}

// Sample inverse-CDF samples the distribution, returning the chosen index
// and its pdf.
func (d *Distribution1D) Sample(u float64) (int, float64) {
	return sample1D(d.pdf, d.cdf, u)
}

// Distribution2D is a row-major 2D discrete distribution: a marginal
// distribution over rows, and one conditional distribution per row.
type Distribution2D struct {
	width, height                     int
	conditionalPDF, conditionalCDF    []float64
	marginalPDF, marginalCDF          []float64
}

// NewDistribution2D builds a Distribution2D from width*height weights,
// row-major. Each row is independently normalized (conditional), then the
// per-row sums are normalized again (marginal).
func NewDistribution2D(logger Logger, weights []float64, width, height int) *Distribution2D {
	conditionalPDF := append([]float64(nil), weights...)
	conditionalCDF := make([]float64, len(weights))
	marginalPDF := make([]float64, height)
	marginalCDF := make([]float64, height)

	for y := 0; y < height; y++ {
		row := conditionalPDF[y*width : (y+1)*width]
		rowCDF := conditionalCDF[y*width : (y+1)*width]
		marginalPDF[y] = make1D(logger, row, rowCDF)
	}
	make1D(logger, marginalPDF, marginalCDF)

	return &Distribution2D{
		width: width, height: height,
		conditionalPDF: conditionalPDF, conditionalCDF: conditionalCDF,
		marginalPDF: marginalPDF, marginalCDF: marginalCDF,
	}
}

// Sample samples the marginal distribution (by v) to pick a row, then the
// chosen row's conditional distribution (by u) to pick a column. Returns the
// (x,y) texel and the combined pdf p(x,y) = p(x|y) * p(y).
func (d *Distribution2D) Sample(u, v float64) (int, int, float64) {
	y, py := sample1D(d.marginalPDF, d.marginalCDF, v)
	i0 := y * d.width
	i1 := i0 + d.width
	x, px := sample1D(d.conditionalPDF[i0:i1], d.conditionalCDF[i0:i1], u)
	return x, y, px * py
}

// PDF returns the discrete pdf for texel (x,y).
func (d *Distribution2D) PDF(x, y int) float64 {
	x = min(x, d.width-1)
	y = min(y, d.height-1)
	return d.conditionalPDF[y*d.width+x] * d.marginalPDF[y]
}

// Width returns the distribution's column count.
func (d *Distribution2D) Width() int { return d.width }

// Height returns the distribution's row count.
func (d *Distribution2D) Height() int { return d.height }
