package check

import (
	"errors"

	"github.com/charlie0129/battcheck/pkg/powerinfo"
)

type fakeDevice struct {
	vendor    string
	model     string
	state     powerinfo.BatteryState
	charge    float64
	chargeErr error
}

func (d *fakeDevice) Vendor() string                  { return d.vendor }
func (d *fakeDevice) Model() string                   { return d.model }
func (d *fakeDevice) State() powerinfo.BatteryState   { return d.state }
func (d *fakeDevice) StateOfCharge() (float64, error) { return d.charge, d.chargeErr }

type enumeration struct {
	entries []powerinfo.Entry
	err     error
}

// fakeProvider returns its enumerations in order and repeats the last one.
type fakeProvider struct {
	results []enumeration
	calls   int
}

func (p *fakeProvider) Batteries() ([]powerinfo.Entry, error) {
	i := p.calls
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	p.calls++
	return p.results[i].entries, p.results[i].err
}

func devices(devs ...*fakeDevice) []powerinfo.Entry {
	entries := make([]powerinfo.Entry, 0, len(devs))
	for _, d := range devs {
		entries = append(entries, powerinfo.Entry{Device: d})
	}
	return entries
}

func nDevices(n int) []powerinfo.Entry {
	devs := make([]*fakeDevice, 0, n)
	for i := 0; i < n; i++ {
		devs = append(devs, &fakeDevice{state: powerinfo.Full, charge: 100})
	}
	return devices(devs...)
}

func singleProvider(d *fakeDevice) *fakeProvider {
	return &fakeProvider{results: []enumeration{{entries: devices(d)}}}
}

var errBroken = errors.New("device went away")
