package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/equation"
	"github.com/zephyrtronium/equation/linalg"
)

// loadVars defines the variables in a YAML mapping. Integers and floats
// become integers and doubles. A list of numbers is a row vector, and a list
// of lists of numbers is a matrix by rows.
func loadVars(e *equation.Equation, name string) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return defineVars(e, b)
}

func defineVars(e *equation.Equation, b []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("reading variables: %w", err)
	}
	names := make([]string, 0, len(doc))
	for k := range doc {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v, err := value(doc[k])
		if err != nil {
			return fmt.Errorf("variable %s: %w", k, err)
		}
		if err := e.Alias(k, v); err != nil {
			return err
		}
	}
	return nil
}

func value(x any) (any, error) {
	switch x := x.(type) {
	case int:
		return x, nil
	case float64:
		return x, nil
	case []any:
		if len(x) == 0 {
			return linalg.New(0, 0), nil
		}
		if _, ok := x[0].([]any); !ok {
			row, err := numbers(x)
			if err != nil {
				return nil, err
			}
			return linalg.NewFrom(1, len(row), row...), nil
		}
		var data []float64
		cols := -1
		for i, r := range x {
			r, ok := r.([]any)
			if !ok {
				return nil, fmt.Errorf("row %d is not a list", i)
			}
			row, err := numbers(r)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			if cols >= 0 && len(row) != cols {
				return nil, fmt.Errorf("row %d has %d columns, not %d", i, len(row), cols)
			}
			cols = len(row)
			data = append(data, row...)
		}
		return linalg.NewFrom(len(x), cols, data...), nil
	}
	return nil, fmt.Errorf("unsupported value %v (%T)", x, x)
}

func numbers(x []any) ([]float64, error) {
	r := make([]float64, len(x))
	for i, v := range x {
		switch v := v.(type) {
		case int:
			r[i] = float64(v)
		case float64:
			r[i] = v
		default:
			return nil, fmt.Errorf("element %d is %T, not a number", i, v)
		}
	}
	return r, nil
}
