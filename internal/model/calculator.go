package model

import "math"

// StockEstimate holds the results of a cable stock calculation.
type StockEstimate struct {
	TotalRequested  float64 `json:"total_requested"`   // Sum of all requested cut lengths (m)
	TotalAvailable  float64 `json:"total_available"`   // Sum of all reel lengths (m)
	LongestCut      float64 `json:"longest_cut"`       // Longest single cut (m)
	Shortfall       float64 `json:"shortfall"`         // Requested minus available, 0 when covered
	ExtraReelsExact float64 `json:"extra_reels_exact"` // Shortfall expressed in full reels
	ExtraReelsMin   int     `json:"extra_reels_min"`   // Full reels to buy (ceiling of exact)
	OversizeCuts    int     `json:"oversize_cuts"`     // Cuts longer than a full reel
}

// CalculateStockEstimate compares the requested cable against the reels on
// hand and estimates how many full-size reels are missing. It is a lower
// bound: a plan can still be infeasible when total length suffices but no
// single reel is long enough for a cut.
func CalculateStockEstimate(reels []Reel, cuts []CutRequest) StockEstimate {
	var est StockEstimate
	for _, c := range cuts {
		est.TotalRequested += c.Length
		if c.Length > est.LongestCut {
			est.LongestCut = c.Length
		}
		if c.Length > MaxReelLength+Epsilon {
			est.OversizeCuts++
		}
	}
	for _, r := range reels {
		est.TotalAvailable += r.Length
	}

	shortfall := est.TotalRequested - est.TotalAvailable
	if shortfall <= Epsilon {
		return est
	}
	est.Shortfall = shortfall
	est.ExtraReelsExact = shortfall / MaxReelLength
	est.ExtraReelsMin = int(math.Ceil(est.ExtraReelsExact - Epsilon))
	return est
}
