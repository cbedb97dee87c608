package check

import (
	"fmt"

	"github.com/charlie0129/battcheck/pkg/powerinfo"
)

// Provider enumerates the batteries on the host. It is queried again on every
// cycle. An error means the enumeration as a whole failed; failures of single
// batteries are reported in the entries.
type Provider interface {
	Batteries() ([]powerinfo.Entry, error)
}

// Select picks the battery to evaluate from entries.
//
// With more than one battery an id is required, and an id greater than the
// number of batteries is rejected with ErrUnknownBatteryID. An id equal to
// the count passes that check and then fails the lookup with ErrUnknown.
func Select(entries []powerinfo.Entry, id *int) (powerinfo.Device, error) {
	count := len(entries)

	if count == 0 {
		return nil, ErrNoBatteries
	}

	if count > 1 && id == nil {
		return nil, ErrTooManyBatteries
	}

	if count > 1 && *id > count {
		return nil, ErrUnknownBatteryID
	}

	idx := 0
	if id != nil {
		idx = *id
	}

	if idx < 0 || idx >= count {
		return nil, fmt.Errorf("%w: no battery at index %d", ErrUnknown, idx)
	}

	entry := entries[idx]
	if entry.Err != nil {
		return nil, fmt.Errorf("%w: battery %d: %v", ErrUnknown, idx, entry.Err)
	}
	if entry.Device == nil {
		return nil, fmt.Errorf("%w: battery %d is missing", ErrUnknown, idx)
	}

	return entry.Device, nil
}

// Observe reads the state and charge of dev at one instant.
func Observe(dev powerinfo.Device) (powerinfo.Observation, error) {
	charge, err := dev.StateOfCharge()
	if err != nil {
		return powerinfo.Observation{}, fmt.Errorf("%w: failed to read state of charge: %v", ErrUnknown, err)
	}

	return powerinfo.Observation{
		State:         dev.State(),
		ChargePercent: charge,
	}, nil
}
