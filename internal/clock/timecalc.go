package clock

import "math"

// MinuteValue converts a minute-hand angle to 0-59, six degrees per tick.
func MinuteValue(angle float64) int {
	return int(math.Round(normalizeAngle(angle)/6)) % 60
}

// hourEpsilon absorbs trigonometric round-off, so that a hand computed to lie
// exactly on a numeral (59.99999999999999° for 60°) floors to that numeral.
const hourEpsilon = 1e-6

// HourValue converts an hour-hand angle to 1-12, thirty degrees per hour.
//
// The floor is taken: the hour hand sits between two numerals for most of the hour.
// Angles within hourEpsilon below a numeral count as that numeral.
func HourValue(angle float64) int {
	return displayHour(int(math.Floor((normalizeAngle(angle)+hourEpsilon)/30)) % 12)
}

// EstimateHour derives an hour from the minute value alone, for readings where no
// hour hand was found. The result names the numeral the minute hand is nearest to
// and is only a degraded estimate.
func EstimateHour(minute int) int {
	return displayHour((minute / 5) % 12)
}

// ComputeTime turns the classified hands into a displayed hour and minute.
func ComputeTime(minuteHand Cluster, hourHand *Cluster) (hour, minute int, estimated bool) {
	minute = MinuteValue(minuteHand.Angle)
	if hourHand == nil {
		return EstimateHour(minute), minute, true
	}
	return HourValue(hourHand.Angle), minute, false
}

// displayHour follows the 12-hour dial: there is no hour 0.
func displayHour(h int) int {
	if h == 0 {
		return 12
	}
	return h
}
