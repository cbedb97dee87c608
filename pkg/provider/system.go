package provider

import (
	"errors"
	"math"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/charlie0129/battcheck/pkg/check"
	"github.com/charlie0129/battcheck/pkg/powerinfo"
)

var _ check.Provider = &System{}

// System reports the batteries of the host through distatus/battery.
// Vendor and model come from sysfs where available.
type System struct {
	getAll   func() ([]*battery.Battery, error)
	metadata *SysfsReader
}

// NewSystem returns a provider for the batteries of this host.
func NewSystem() *System {
	return &System{
		getAll:   battery.GetAll,
		metadata: NewSysfsReader(afero.NewOsFs(), SysfsPowerSupplyPath),
	}
}

// Batteries enumerates all batteries. A battery that failed to be read is
// returned as an entry with Err set; the other batteries are unaffected.
// Batteries of peripherals are left out when sysfs identifies them.
func (s *System) Batteries() ([]powerinfo.Entry, error) {
	meta := s.metadata.Read()
	bats, err := s.getAll()

	var elemErrs battery.Errors
	if err != nil {
		switch {
		case errors.As(err, &elemErrs):
		case allFailed(err):
			// distatus drops the per-battery errors when none could be read,
			// so fall back to the number of batteries sysfs knows about.
			count := len(meta)
			if count == 0 {
				count = 1
			}
			bats = nil
			elemErrs = make(battery.Errors, count)
			for i := range elemErrs {
				elemErrs[i] = err
			}
		default:
			return nil, pkgerrors.Wrap(err, "failed to enumerate batteries")
		}
	}

	count := len(bats)
	if len(elemErrs) > count {
		count = len(elemErrs)
	}

	if len(meta) != count {
		// sysfs and the battery library disagree, so indexes cannot be matched.
		logrus.WithFields(logrus.Fields{
			"batteries": count,
			"metadata":  len(meta),
		}).Trace("ignoring battery metadata")
		meta = nil
	}

	entries := make([]powerinfo.Entry, 0, count)
	for i := 0; i < count; i++ {
		if meta != nil && meta[i].Peripheral() {
			logrus.WithField("supply", meta[i].Name).Trace("skipping peripheral battery")
			continue
		}

		var elemErr error
		if i < len(elemErrs) {
			elemErr = elemErrs[i]
		}

		var bat *battery.Battery
		if i < len(bats) {
			bat = bats[i]
		}

		if bat == nil || !usable(elemErr) {
			if elemErr == nil {
				elemErr = pkgerrors.New("battery not reported")
			}
			entries = append(entries, powerinfo.Entry{Err: pkgerrors.Wrapf(elemErr, "failed to read battery %d", len(entries))})
			continue
		}

		dev := &Device{bat: bat}
		if meta != nil {
			dev.vendor = meta[i].Vendor
			dev.model = meta[i].Model
		}
		entries = append(entries, powerinfo.Entry{Device: dev})
	}

	return entries, nil
}

// allFailed reports whether err is the fatal error distatus returns when not a
// single battery could be read.
func allFailed(err error) bool {
	var fatal battery.ErrFatal
	return errors.As(err, &fatal) && fatal.Err == battery.ErrAllNotNil
}

// usable reports whether a battery with the given error still has the fields
// needed to observe it.
func usable(err error) bool {
	if err == nil {
		return true
	}

	var partial battery.ErrPartial
	if errors.As(err, &partial) {
		return partial.State == nil && partial.Current == nil && partial.Full == nil
	}

	return false
}

// Device is a battery reported by distatus/battery.
type Device struct {
	bat    *battery.Battery
	vendor string
	model  string
}

func (d *Device) Vendor() string {
	return d.vendor
}

func (d *Device) Model() string {
	return d.model
}

func (d *Device) State() powerinfo.BatteryState {
	switch d.bat.State {
	case battery.Charging:
		return powerinfo.Charging
	case battery.Discharging:
		return powerinfo.Discharging
	case battery.Empty:
		return powerinfo.Empty
	case battery.Full:
		return powerinfo.Full
	default:
		return powerinfo.Unknown
	}
}

// StateOfCharge returns the current charge as a percentage of the last full
// charge, clamped to [0, 100].
func (d *Device) StateOfCharge() (float64, error) {
	if d.bat.Full <= 0 {
		return 0, pkgerrors.Errorf("battery reports a full capacity of %v", d.bat.Full)
	}

	percent := d.bat.Current / d.bat.Full * 100
	return math.Max(0, math.Min(100, percent)), nil
}
