package powerinfo

import (
	"fmt"
	"strings"
)

// BatteryState represents the charging state of the battery.
type BatteryState int

const (
	// Unknown indicates the state could not be determined.
	Unknown BatteryState = iota
	// Charging indicates the battery is charging.
	Charging
	// Discharging indicates the battery is discharging.
	Discharging
	// Empty indicates the battery is empty.
	Empty
	// Full indicates the battery is full.
	Full
)

var stateNames = map[BatteryState]string{
	Unknown:     "unknown",
	Charging:    "charging",
	Discharging: "discharging",
	Empty:       "empty",
	Full:        "full",
}

// SelectableStates are the states a condition may be written against.
var SelectableStates = []BatteryState{Charging, Discharging, Empty, Full}

func (s BatteryState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return stateNames[Unknown]
}

// ParseBatteryState parses one of the selectable state names, ignoring case.
func ParseBatteryState(s string) (BatteryState, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, state := range SelectableStates {
		if state.String() == want {
			return state, nil
		}
	}

	names := make([]string, 0, len(SelectableStates))
	for _, state := range SelectableStates {
		names = append(names, state.String())
	}
	return Unknown, fmt.Errorf("invalid battery state %q, possible values are %s", s, strings.Join(names, ", "))
}

// Observation is a single reading taken from one battery.
// ChargePercent is in [0, 100] and is never rounded.
type Observation struct {
	State         BatteryState `json:"state"`
	ChargePercent float64      `json:"chargePercent"`
}

// Device is one battery reported by the host.
// Vendor and Model return an empty string when unknown.
type Device interface {
	Vendor() string
	Model() string
	State() BatteryState
	StateOfCharge() (float64, error)
}

// Entry is one element of a battery enumeration. Exactly one of Device and
// Err is set.
type Entry struct {
	Device Device
	Err    error
}
