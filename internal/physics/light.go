package physics

// SpeedOfLight in vacuum, m/s.
const SpeedOfLight = 2.998e8

// LightTravelTime returns the one-way time of flight over distance at speed.
// A non-positive speed yields zero.
func LightTravelTime(distance, speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return distance / speed
}
