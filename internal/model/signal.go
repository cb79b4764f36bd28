package model

import "time"

// Direction is the side of a breakout/retest setup.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Signal is a fully specified trade setup emitted by the detector.
//
// For LONG: Stop < Entry and Target = Entry + Reward.
// For SHORT: Stop > Entry and Target = Entry - Reward.
// Reward = Risk * risk/reward ratio, and Risk > 0.
type Signal struct {
	Direction           Direction `json:"direction"`
	Symbol              string    `json:"symbol"`
	Entry               float64   `json:"entry"`
	Stop                float64   `json:"stop"`
	Target              float64   `json:"target"`
	Risk                float64   `json:"risk"`
	Reward              float64   `json:"reward"`
	BreakoutDate        time.Time `json:"breakout_date"`
	RetestDate          time.Time `json:"retest_date"`
	CurrentDate         time.Time `json:"current_date"`
	BreakoutVolumeRatio float64   `json:"breakout_volume_ratio"`
	RetestVolumeRatio   float64   `json:"retest_volume_ratio"`
	AvgVolume           float64   `json:"avg_volume"`
}
