package focus

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Effect is a user-supplied callback run after commit: a widget action
// handler, a chord binding's handler, or an effect cleanup.
type Effect func() error

// RunBatch runs every effect in order. A panicking or error-returning
// effect does not stop the rest of the batch — each widget's state is
// otherwise preserved untouched — and every failure is accumulated
// into one multierror so the host logs the whole batch at once rather
// than once per widget.
func RunBatch(effects []Effect) error {
	var result *multierror.Error
	for _, eff := range effects {
		if err := runOne(eff); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	return result
}

func runOne(eff Effect) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("widget action panicked: %v", r)
		}
	}()
	if eff == nil {
		return nil
	}
	return eff()
}
