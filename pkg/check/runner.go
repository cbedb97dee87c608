package check

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battcheck/pkg/powerinfo"
)

// Phase is the state of the polling loop.
type Phase int

const (
	// PhaseFirstAttempt runs exactly one cycle.
	PhaseFirstAttempt Phase = iota
	// PhaseWaiting repeats cycles until one passes.
	PhaseWaiting
)

func (p Phase) String() string {
	if p == PhaseWaiting {
		return "waiting"
	}
	return "firstAttempt"
}

// Next returns the phase that follows a cycle which ended with passed and err,
// or the terminal outcome if the run is over.
//
// An error on the first attempt always ends the run, even when waiting: no
// batteries or an ambiguous id will not fix themselves. Once waiting, only a
// passing cycle ends the run.
func Next(p Phase, wait bool, passed bool, err error) (Phase, *Outcome) {
	switch p {
	case PhaseFirstAttempt:
		if !wait || err != nil || passed {
			o := OutcomeOf(passed, err)
			return p, &o
		}
		return PhaseWaiting, nil
	default:
		if err == nil && passed {
			return p, &Outcome{Kind: KindPass}
		}
		return PhaseWaiting, nil
	}
}

const maxAttemptRecords = 60

// Runner runs a Request against a Provider.
type Runner struct {
	provider Provider
	req      Request
	out      io.Writer
	recorder *AttemptRecorder

	// Sleep blocks between attempts. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// NewRunner returns a Runner that writes listings and verbose diagnostics to out.
func NewRunner(provider Provider, req Request, out io.Writer) *Runner {
	return &Runner{
		provider: provider,
		req:      req,
		out:      out,
		recorder: NewAttemptRecorder(maxAttemptRecords),
		Sleep:    time.Sleep,
	}
}

// Attempts returns the number of cycles run so far.
func (r *Runner) Attempts() int {
	return r.recorder.Attempts
}

// Run lists batteries or evaluates the request until it reaches an Outcome.
// With Wait set, it blocks until the conditions pass.
func (r *Runner) Run() Outcome {
	logrus.WithFields(r.req.LogrusFields()).Debug("starting battery check")

	if r.req.List {
		return r.list()
	}

	phase := PhaseFirstAttempt
	for {
		if phase == PhaseWaiting {
			r.Sleep(r.req.Interval)
		}

		passed, err := r.cycle()

		next, outcome := Next(phase, r.req.Wait, passed, err)
		r.logCycle(phase, passed, err)
		if outcome != nil {
			return *outcome
		}
		phase = next
	}
}

// cycle queries the provider, selects a battery and evaluates the request.
func (r *Runner) cycle() (bool, error) {
	r.recorder.AddRecordNow()

	entries, err := r.provider.Batteries()
	if err != nil {
		return false, &ProviderError{Err: err}
	}

	dev, err := Select(entries, r.req.ID)
	if err != nil {
		return false, err
	}

	obs, err := Observe(dev)
	if err != nil {
		return false, err
	}

	v := Evaluate(obs, r.req)
	if r.req.Verbose {
		v.Report(r.out)
	}

	logrus.WithFields(logrus.Fields{
		"state":  obs.State.String(),
		"charge": obs.ChargePercent,
		"passed": v.Passed,
	}).Trace("evaluated conditions")

	return v.Passed, nil
}

func (r *Runner) logCycle(phase Phase, passed bool, err error) {
	entry := logrus.WithFields(logrus.Fields{
		"attempt": r.Attempts(),
		"phase":   phase.String(),
		"elapsed": r.recorder.Elapsed().Round(time.Millisecond).String(),
	})
	if gaps := r.recorder.Gaps(); len(gaps) > 0 {
		entry = entry.WithField("sinceLast", gaps[len(gaps)-1].Round(time.Millisecond).String())
	}

	if err != nil {
		if phase == PhaseWaiting {
			entry.WithError(err).Warn("battery check failed while waiting, will retry")
			return
		}
		entry.WithError(err).Debug("battery check failed")
		return
	}

	if !passed && r.req.Wait {
		entry.WithField("interval", r.req.Interval.String()).Debug("conditions not met, waiting")
		return
	}

	entry.WithField("passed", passed).Debug("battery check finished")
}

type listEntry struct {
	ID     int    `json:"id"`
	Vendor string `json:"vendor"`
	Model  string `json:"model"`
}

func (r *Runner) list() Outcome {
	entries, err := r.provider.Batteries()
	if err != nil {
		return OutcomeOf(false, &ProviderError{Err: err})
	}

	listed := make([]listEntry, 0, len(entries))
	for idx, e := range entries {
		if e.Err != nil || e.Device == nil {
			logrus.WithError(e.Err).WithField("id", idx).Debug("skipping battery")
			continue
		}
		listed = append(listed, listEntry{
			ID:     idx,
			Vendor: orUnknown(e.Device.Vendor()),
			Model:  orUnknown(e.Device.Model()),
		})
	}

	if r.req.JSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listed); err != nil {
			return OutcomeOf(false, fmt.Errorf("%w: failed to encode battery list: %v", ErrUnknown, err))
		}
		return Outcome{Kind: KindPass}
	}

	for _, l := range listed {
		fmt.Fprintf(r.out, "Battery %d\t Vendor: %s\n", l.ID, l.Vendor)
		fmt.Fprintf(r.out, "\t\t model: %s\n", l.Model)
		fmt.Fprintln(r.out)
	}

	return Outcome{Kind: KindPass}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

var _ Provider = ProviderFunc(nil)

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func() ([]powerinfo.Entry, error)

func (f ProviderFunc) Batteries() ([]powerinfo.Entry, error) {
	return f()
}
