package equation

// Operation is one step of a compiled statement. It holds references to the
// variables it reads and writes, not copies of them.
type Operation struct {
	name    string
	process func() error
}

// NewOperation creates an operation. fn is called each time the operation is
// performed.
func NewOperation(name string, fn func() error) *Operation {
	return &Operation{name: name, process: fn}
}

// Name returns the name of the operation, e.g. "multiply-mm".
func (op *Operation) Name() string {
	return op.name
}

// Process performs the operation once.
func (op *Operation) Process() error {
	return op.process()
}

// Sequence is a compiled statement. Performing it runs its operations in
// order against the current contents of the variables it was compiled with.
// A Sequence shares state with the Equation that compiled it and is not safe
// for concurrent use.
type Sequence struct {
	ops    []*Operation
	target string
}

func (s *Sequence) add(op *Operation) {
	s.ops = append(s.ops, op)
}

// Perform runs each operation in order. If an operation fails, Perform stops
// and returns a *ComputeError; outputs of earlier operations are not undone.
func (s *Sequence) Perform() error {
	for i, op := range s.ops {
		if err := op.Process(); err != nil {
			return &ComputeError{Op: op.name, Step: i, Err: err}
		}
	}
	return nil
}

// Len returns the number of operations in s.
func (s *Sequence) Len() int {
	return len(s.ops)
}

// Ops returns the names of the operations in s in the order they run.
func (s *Sequence) Ops() []string {
	r := make([]string, len(s.ops))
	for i, op := range s.ops {
		r[i] = op.name
	}
	return r
}

// Target returns the name of the variable the statement assigns, or the
// empty string if it assigns nothing.
func (s *Sequence) Target() string {
	return s.target
}
