package contention

import "github.com/bytedance/sonic"

// Report collects the results of a suite for machine consumption.
type Report struct {
	Counter []CounterResult `json:"counter,omitempty"`
	Files   []FileResult    `json:"files,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
}

// AddError records a harness level failure.
func (r *Report) AddError(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
	}
}

// JSON encodes the report as indented JSON. Strategies encode by name and
// durations in nanoseconds.
func (r Report) JSON() ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(r, "", "  ")
}
