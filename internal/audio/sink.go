package audio

import "errors"

// Sink is the sample consumer interface shared with the APU
type Sink interface {
	WriteSample(sample float32) error
}

// NullSink discards every sample
type NullSink struct{}

// WriteSample implements Sink
func (NullSink) WriteSample(float32) error { return nil }

// Tee forwards each sample to every sink. All sinks receive the sample
// even if an earlier one fails; the errors are joined.
type Tee []Sink

// WriteSample implements Sink
func (t Tee) WriteSample(sample float32) error {
	var errs []error
	for _, sink := range t {
		if err := sink.WriteSample(sample); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
