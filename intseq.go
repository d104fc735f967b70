package equation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSequence is the error underlying invalid integer sequences.
var ErrSequence = errors.New("invalid integer sequence")

// IntSequence is an ordered list of integers used to index matrices. A
// sequence reads the variables it was written with each time it is bound, so
// compiled statements see updated values.
type IntSequence interface {
	// Bind resolves the sequence for a target whose largest valid index is
	// last. Sequences that are not Open ignore last. Bind must be called
	// before Len or AppendTo.
	Bind(last int) error
	// Len returns the number of values produced by the most recent Bind.
	Len() int
	// AppendTo appends the values produced by the most recent Bind, in order.
	AppendTo(dst []int) []int
	// Open reports whether the end of the sequence comes from the target.
	Open() bool
}

// Explicit is a fixed list of integers.
type Explicit struct {
	// Values are integer variables.
	Values []*Variable
}

// Ints creates an explicit sequence of constant values.
func Ints(vals ...int) *Explicit {
	s := &Explicit{Values: make([]*Variable, len(vals))}
	for i, v := range vals {
		s.Values[i] = intLiteral(v)
	}
	return s
}

func (s *Explicit) Bind(last int) error { return nil }
func (s *Explicit) Len() int            { return len(s.Values) }
func (s *Explicit) Open() bool          { return false }

func (s *Explicit) AppendTo(dst []int) []int {
	for _, v := range s.Values {
		dst = append(dst, v.i)
	}
	return dst
}

// For is the progression start, start+step, ... up to and including at most
// end. A nil Step means 1.
type For struct {
	Start, Step, End *Variable

	start, step, n int
}

func (s *For) Open() bool { return false }

func (s *For) Bind(last int) error {
	s.start, s.step = s.Start.i, 1
	if s.Step != nil {
		s.step = s.Step.i
	}
	end := s.End.i
	if s.step <= 0 {
		return fmt.Errorf("%w: step %d must be positive", ErrSequence, s.step)
	}
	if end < s.start {
		return fmt.Errorf("%w: end %d is before start %d", ErrSequence, end, s.start)
	}
	s.n = (end-s.start)/s.step + 1
	return nil
}

func (s *For) Len() int { return s.n }

func (s *For) AppendTo(dst []int) []int {
	for k := 0; k < s.n; k++ {
		dst = append(dst, s.start+k*s.step)
	}
	return dst
}

// Range is an open-ended progression from Start to the last index of the
// target. A nil Start means 0 and a nil Step means 1.
type Range struct {
	Start, Step *Variable

	start, step, n int
}

func (s *Range) Open() bool { return true }

func (s *Range) Bind(last int) error {
	s.start, s.step = 0, 1
	if s.Start != nil {
		s.start = s.Start.i
	}
	if s.Step != nil {
		s.step = s.Step.i
	}
	if s.start < 0 {
		return fmt.Errorf("%w: start %d is negative", ErrSequence, s.start)
	}
	if s.step <= 0 {
		return fmt.Errorf("%w: step %d must be positive", ErrSequence, s.step)
	}
	s.n = 0
	if last >= s.start {
		s.n = (last-s.start)/s.step + 1
	}
	return nil
}

func (s *Range) Len() int { return s.n }

func (s *Range) AppendTo(dst []int) []int {
	for k := 0; k < s.n; k++ {
		dst = append(dst, s.start+k*s.step)
	}
	return dst
}

// Combined is the concatenation of several sequences.
type Combined struct {
	Parts []IntSequence
}

func (s *Combined) Open() bool {
	for _, p := range s.Parts {
		if p.Open() {
			return true
		}
	}
	return false
}

func (s *Combined) Bind(last int) error {
	for _, p := range s.Parts {
		if err := p.Bind(last); err != nil {
			return err
		}
	}
	return nil
}

func (s *Combined) Len() int {
	n := 0
	for _, p := range s.Parts {
		n += p.Len()
	}
	return n
}

func (s *Combined) AppendTo(dst []int) []int {
	for _, p := range s.Parts {
		dst = p.AppendTo(dst)
	}
	return dst
}

// indices binds s to a target with n elements along the indexed dimension and
// returns its values.
func indices(v *Variable, n int) ([]int, error) {
	if v.kind == KindInteger {
		return []int{v.i}, nil
	}
	if err := v.seq.Bind(n - 1); err != nil {
		return nil, err
	}
	return v.seq.AppendTo(make([]int, 0, v.seq.Len())), nil
}

func seqString(s IntSequence) string {
	var b strings.Builder
	switch s := s.(type) {
	case *Explicit:
		for i, v := range s.Values {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(v.i))
		}
	case *For:
		b.WriteString(strconv.Itoa(s.Start.i))
		if s.Step != nil {
			b.WriteString(":" + strconv.Itoa(s.Step.i))
		}
		b.WriteString(":" + strconv.Itoa(s.End.i))
	case *Range:
		if s.Start != nil {
			b.WriteString(strconv.Itoa(s.Start.i))
		}
		b.WriteByte(':')
		if s.Step != nil {
			b.WriteString(strconv.Itoa(s.Step.i) + ":")
		}
	case *Combined:
		for i, p := range s.Parts {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(seqString(p))
		}
	case nil:
		return "<nil>"
	default:
		return fmt.Sprint(s)
	}
	return b.String()
}

// seqRef is a sequence held by a named variable. It reads the variable at
// each Bind so that aliasing a new sequence is seen by compiled statements.
type seqRef struct {
	v   *Variable
	cur IntSequence
}

func (s *seqRef) Open() bool { return s.v.seq != nil && s.v.seq.Open() }

func (s *seqRef) Bind(last int) error {
	s.cur = s.v.seq
	if s.cur == nil {
		return fmt.Errorf("%w: %s is unset", ErrSequence, s.v.name)
	}
	return s.cur.Bind(last)
}

func (s *seqRef) Len() int { return s.cur.Len() }

func (s *seqRef) AppendTo(dst []int) []int { return s.cur.AppendTo(dst) }
