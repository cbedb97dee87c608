package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battcheck/pkg/powerinfo"
	"github.com/charlie0129/battcheck/pkg/utils/ptr"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		entries []powerinfo.Entry
		id      *int
		wantIdx int
		wantErr error
	}{
		{
			name:    "no batteries",
			entries: nil,
			wantErr: ErrNoBatteries,
		},
		{
			name:    "no batteries with id",
			entries: []powerinfo.Entry{},
			id:      ptr.To(0),
			wantErr: ErrNoBatteries,
		},
		{
			name:    "single battery without id",
			entries: nDevices(1),
			wantIdx: 0,
		},
		{
			name:    "single battery with id 0",
			entries: nDevices(1),
			id:      ptr.To(0),
			wantIdx: 0,
		},
		{
			name:    "single battery with out of range id",
			entries: nDevices(1),
			id:      ptr.To(3),
			wantErr: ErrUnknown,
		},
		{
			name:    "two batteries without id",
			entries: nDevices(2),
			wantErr: ErrTooManyBatteries,
		},
		{
			name:    "five batteries without id",
			entries: nDevices(5),
			wantErr: ErrTooManyBatteries,
		},
		{
			name:    "two batteries with id 1",
			entries: nDevices(2),
			id:      ptr.To(1),
			wantIdx: 1,
		},
		{
			name:    "two batteries with id above count",
			entries: nDevices(2),
			id:      ptr.To(3),
			wantErr: ErrUnknownBatteryID,
		},
		{
			name:    "two batteries with id equal to count",
			entries: nDevices(2),
			id:      ptr.To(2),
			wantErr: ErrUnknown,
		},
		{
			name: "selected battery errored",
			entries: []powerinfo.Entry{
				{Device: &fakeDevice{}},
				{Err: errBroken},
			},
			id:      ptr.To(1),
			wantErr: ErrUnknown,
		},
		{
			name: "other battery errored",
			entries: []powerinfo.Entry{
				{Device: &fakeDevice{}},
				{Err: errBroken},
			},
			id:      ptr.To(0),
			wantIdx: 0,
		},
		{
			name:    "only battery errored",
			entries: []powerinfo.Entry{{Err: errBroken}},
			wantErr: ErrUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.entries, tt.id)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "Select() error = %v, want %v", err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.entries[tt.wantIdx].Device, got)
		})
	}
}

func TestSelectManyBatteriesIDAboveCount(t *testing.T) {
	for count := 2; count <= 8; count++ {
		for id := count + 1; id <= count+3; id++ {
			_, err := Select(nDevices(count), ptr.To(id))
			assert.ErrorIs(t, err, ErrUnknownBatteryID, "count=%d id=%d", count, id)
		}
	}
}

func TestObserve(t *testing.T) {
	obs, err := Observe(&fakeDevice{state: powerinfo.Charging, charge: 42.5})
	require.NoError(t, err)
	assert.Equal(t, powerinfo.Observation{State: powerinfo.Charging, ChargePercent: 42.5}, obs)

	_, err = Observe(&fakeDevice{chargeErr: errBroken})
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Equal(t, KindUnknown, KindOf(err))
}
