package domain

import "math"

// Round2 rounds to two decimal places, half away from zero on the cent
// boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotal calculates a membership's charge: package price plus
// enrollment fee minus discount, floored at zero. A discount larger than
// price+fee yields exactly 0, never a negative total.
func ComputeTotal(packagePrice, discount, enrollmentFee float64) float64 {
	total := packagePrice + enrollmentFee - discount
	if total < 0 {
		total = 0
	}
	return Round2(total)
}
