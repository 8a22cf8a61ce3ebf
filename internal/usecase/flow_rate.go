package usecase

import "math"

// ComputeFlowRate returns the flow rate, in gallons per minute, needed to
// turn poolVolume gallons over once every turnoverHours, rounded to one
// decimal place. It returns nil unless both inputs are present and
// turnoverHours is positive.
func ComputeFlowRate(poolVolume, turnoverHours *float64) *float64 {
	if poolVolume == nil || turnoverHours == nil || *turnoverHours <= 0 {
		return nil
	}
	gpm := math.Round(*poolVolume/(*turnoverHours*60)*10) / 10
	return &gpm
}
