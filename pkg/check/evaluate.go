package check

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/charlie0129/battcheck/pkg/powerinfo"
)

// Predicate names one condition of a Request.
type Predicate string

const (
	PredicateLessThan    Predicate = "lt"
	PredicateGreaterThan Predicate = "gt"
	PredicateState       Predicate = "state"
	PredicateNotState    Predicate = "not-state"
)

var predicateTitles = map[Predicate]string{
	PredicateLessThan:    "Less than",
	PredicateGreaterThan: "Greater than",
	PredicateState:       "State",
	PredicateNotState:    "Not state",
}

// Result is the outcome of one evaluated predicate.
type Result struct {
	Predicate Predicate
	Passed    bool
}

// Verdict is the result of evaluating a Request against one Observation.
// Results holds the predicates that were actually evaluated, in order.
type Verdict struct {
	Observation powerinfo.Observation
	Results     []Result
	Passed      bool
}

// Evaluate checks the predicates of req against obs in the order lt, gt,
// state, not-state and stops at the first one that fails.
func Evaluate(obs powerinfo.Observation, req Request) Verdict {
	v := Verdict{Observation: obs}

	type step struct {
		predicate Predicate
		present   bool
		check     func() bool
	}

	steps := []step{
		{PredicateLessThan, req.LessThan != nil, func() bool {
			return obs.ChargePercent < float64(*req.LessThan)
		}},
		{PredicateGreaterThan, req.GreaterThan != nil, func() bool {
			return obs.ChargePercent > float64(*req.GreaterThan)
		}},
		{PredicateState, req.State != nil, func() bool {
			return obs.State == *req.State
		}},
		{PredicateNotState, req.NotState != nil, func() bool {
			return obs.State != *req.NotState
		}},
	}

	for _, s := range steps {
		if !s.present {
			continue
		}
		passed := s.check()
		v.Results = append(v.Results, Result{Predicate: s.predicate, Passed: passed})
		if !passed {
			return v
		}
	}

	v.Passed = true
	return v
}

// Report writes the observation followed by one line per evaluated predicate.
func (v Verdict) Report(w io.Writer) {
	fmt.Fprintf(w, "State:\t%s\n", v.Observation.State)
	fmt.Fprintf(w, "Charge:\t%s%%\n", strconv.FormatFloat(v.Observation.ChargePercent, 'f', -1, 64))

	for _, r := range v.Results {
		status := color.GreenString("passed")
		if !r.Passed {
			status = color.RedString("failed")
		}
		fmt.Fprintf(w, "%s condition %s\n", predicateTitles[r.Predicate], status)
	}

	if v.Passed {
		fmt.Fprintln(w, "All conditions pass, Exiting")
	}
}
