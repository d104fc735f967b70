package equation

import (
	"log/slog"
)

// Option is an option used when creating an Equation.
type Option interface {
	option(*Equation)
}

type (
	logopt  struct{ log *slog.Logger }
	seedopt uint64
	funcopt struct {
		name string
		fn   Func
	}
	nodefaultsopt struct{}
)

// WithLogger sets the logger that receives compile and macro events. The
// default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return logopt{log}
}

func (o logopt) option(e *Equation) {
	if o.log != nil {
		e.log = o.log
	}
}

// Seed sets the seed of the random source used by rand and randn.
func Seed(seed uint64) Option {
	return seedopt(seed)
}

func (o seedopt) option(e *Equation) {
	e.reseed(uint64(o))
}

// SetFunc adds a function callable from statements. To disable a function,
// pass nil for fn.
func SetFunc(name string, fn Func) Option {
	return funcopt{name, fn}
}

func (o funcopt) option(e *Equation) {
	if o.fn == nil {
		delete(e.funcs, o.name)
		return
	}
	e.funcs[o.name] = o.fn
}

// DisableDefaultFuncs removes all default functions. Their names can then be
// used for variables. Apply it before any SetFunc options.
func DisableDefaultFuncs() Option {
	return nodefaultsopt{}
}

func (nodefaultsopt) option(e *Equation) {
	clear(e.funcs)
}
