package calculator

// DefaultVolumeBaselinePeriod is the trailing window used for volume ratios.
const DefaultVolumeBaselinePeriod = 50

// VolumeBaseline returns the mean of the trailing period volumes, or the mean of
// all volumes when fewer than period exist. An empty input yields 0.
func VolumeBaseline(volumes []float64, period int) float64 {
	if len(volumes) == 0 {
		return 0
	}
	if period <= 0 || period > len(volumes) {
		period = len(volumes)
	}
	avg, err := CalculateSMA(volumes, period)
	if err != nil {
		return 0
	}
	return avg
}
