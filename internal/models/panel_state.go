package models

import "time"

// Heat status value reported by the backend when the furnace is running.
const HeatOn = "ON"

// Target and poll interval bounds, inclusive.
const (
	MinTarget       = 60
	MaxTarget       = 79
	MinPollInterval = 5
	MaxPollInterval = 60
)

// PanelState is the single source of truth for everything the panel shows.
type PanelState struct {
	CurrentTemp    string    `json:"current_temp"`    // raw value from /cur_temp
	Humidity       string    `json:"humidity"`        // raw value from /cur_temp
	FurnaceSummary string    `json:"furnace_summary"` // free text from /cur_temp
	HeatStatus     string    `json:"heat_status"`     // raw value from /heat_status
	HeatIsOn       bool      `json:"heat_is_on"`
	Target         int       `json:"target"`        // [MinTarget, MaxTarget]
	PollInterval   int       `json:"poll_interval"` // seconds, [MinPollInterval, MaxPollInterval]
	Notice         string    `json:"notice,omitempty"`
	ConfirmSeq     uint64    `json:"confirm_seq"` // bumped after every confirmed target push
	UpdatedAt      time.Time `json:"updated_at"`
}

// Readings is one decoded /cur_temp response.
type Readings struct {
	Temperature    string `json:"temperature"`
	Humidity       string `json:"humidity"`
	FurnaceSummary string `json:"furnace_summary"`
}
