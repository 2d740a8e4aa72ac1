package rectify

import "math"

// solve8 solves a*x = b by Gauss-Jordan elimination with partial pivoting.
// At every column the row with the largest absolute value in that column is
// swapped into the pivot position. ok is false when the largest candidate
// pivot is below pivotEpsilon. minPivot reports the smallest pivot used.
func solve8(a [8][8]float64, b [8]float64) (x [8]float64, minPivot float64, ok bool) {
	minPivot = math.Inf(1)

	for col := range 8 {
		pivotRow := col
		maxAbs := math.Abs(a[col][col])
		for r := col + 1; r < 8; r++ {
			if v := math.Abs(a[r][col]); v > maxAbs {
				maxAbs = v
				pivotRow = r
			}
		}
		minPivot = math.Min(minPivot, maxAbs)
		if maxAbs < pivotEpsilon {
			return x, minPivot, false
		}
		if pivotRow != col {
			a[col], a[pivotRow] = a[pivotRow], a[col]
			b[col], b[pivotRow] = b[pivotRow], b[col]
		}

		div := a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] /= div
		}
		b[col] /= div

		for r := range 8 {
			if r == col {
				continue
			}
			factor := a[r][col]
			if factor == 0 {
				continue
			}
			for c := col; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}
	return b, minPivot, true
}
