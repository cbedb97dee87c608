package check

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battcheck/pkg/powerinfo"
)

// DefaultInterval is the delay between attempts when waiting.
const DefaultInterval = 5000 * time.Millisecond

// MaxIntervalMillis is the longest interval in milliseconds that fits in a
// time.Duration.
const MaxIntervalMillis = uint64(math.MaxInt64 / int64(time.Millisecond))

// Request describes one invocation. It is built once and never modified.
// A nil predicate field means the predicate is not checked. Interval is the
// minimum delay between attempts and only matters when Wait is set.
type Request struct {
	List     bool
	JSON     bool
	Wait     bool
	Verbose  bool
	Interval time.Duration
	ID       *int

	State       *powerinfo.BatteryState
	NotState    *powerinfo.BatteryState
	LessThan    *uint8
	GreaterThan *uint8
}

func (r Request) LogrusFields() logrus.Fields {
	fields := logrus.Fields{
		"list":     r.List,
		"wait":     r.Wait,
		"interval": r.Interval,
		"verbose":  r.Verbose,
	}
	if r.ID != nil {
		fields["id"] = *r.ID
	}
	if r.State != nil {
		fields["state"] = r.State.String()
	}
	if r.NotState != nil {
		fields["notState"] = r.NotState.String()
	}
	if r.LessThan != nil {
		fields["lt"] = *r.LessThan
	}
	if r.GreaterThan != nil {
		fields["gt"] = *r.GreaterThan
	}
	return fields
}
