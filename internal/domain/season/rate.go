package season

import "math"

// Per90 returns total*90/max(minutes,1). Zero minutes yields 0.
func Per90(total float64, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return total * 90 / float64(max(minutes, 1))
}

// PerGame returns total/max(games,1).
func PerGame(total float64, games int) float64 {
	return total / float64(max(games, 1))
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
