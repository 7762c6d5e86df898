package safe

import (
	"github.com/pkg/errors"
)

//be safe, don't panic

// Run invokes fn, converting any panic into a returned error. User-supplied
// functions (combiners, triggers, coders) run inside it so a panicking
// implementation fails one Apply instead of the process.
func Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch x := r.(type) {
			case error:
				err = errors.WithMessage(x, "panic")
			default:
				err = errors.Errorf("panic: %v", x)
			}
		}
	}()
	err = fn()
	return err
}

// Go runs fn on a new goroutine, delivering its error (panic included) on
// the returned channel.
func Go(fn func() error) chan error {
	c := make(chan error, 1)
	go func() {
		c <- Run(fn)
		close(c)
	}()
	return c
}
