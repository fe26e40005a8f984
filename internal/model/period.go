package model

import "time"

// DateRange bounds are calendar days, both inclusive. A zero bound is open.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Half string

const (
	FirstHalf  Half = "first"
	SecondHalf Half = "second"
)
