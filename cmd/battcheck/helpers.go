package main

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/charlie0129/battcheck/pkg/powerinfo"
)

func msToDuration(ms uint64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

var _ pflag.Value = &stateValue{}

// stateValue is a battery state flag that remembers whether it was set.
type stateValue struct {
	state powerinfo.BatteryState
	set   bool
}

func (v *stateValue) String() string {
	if !v.set {
		return ""
	}
	return v.state.String()
}

func (v *stateValue) Set(s string) error {
	state, err := powerinfo.ParseBatteryState(s)
	if err != nil {
		return err
	}
	v.state = state
	v.set = true
	return nil
}

func (v *stateValue) Type() string {
	return "state"
}
