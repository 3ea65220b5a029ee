package sensorfilter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parameter names accepted by Filter.Param and Filter.SetParam.
const (
	ParamStepChange        = "step_change"
	ParamStability         = "stability"
	ParamOrder             = "order"
	ParamSamplingFrequency = "sampling_frequency"
	ParamCutoffFrequency   = "cutoff_frequency"
	ParamPower             = "power"
	ParamClip              = "clip"
	ParamGain              = "gain"
)

// ParamSpec describes one named parameter.
type ParamSpec struct {
	Name        string
	Default     float64
	Description string
}

func cloneSpecs(specs []ParamSpec) []ParamSpec {
	return append([]ParamSpec(nil), specs...)
}

func unknownParam(kind Kind, name string) error {
	return fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParam, kind, name)
}

// Snapshot returns the current value of every parameter of f.
func Snapshot(f Filter) map[string]float64 {
	specs := f.Params()
	values := make(map[string]float64, len(specs))
	for _, spec := range specs {
		v, err := f.Param(spec.Name)
		if err != nil {
			continue
		}
		values[spec.Name] = v
	}
	return values
}

// Apply sets every parameter in values on f, in name order so that results
// are deterministic. It stops at the first error.
//
// Butterworth coerces the cutoff against the sampling frequency at the time
// it is set, so sampling_frequency is applied before cutoff_frequency.
func Apply(f Filter, values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := applyPriority(names[i]), applyPriority(names[j])
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		if err := f.SetParam(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func applyPriority(name string) int {
	switch name {
	case ParamSamplingFrequency:
		return 0
	case ParamCutoffFrequency:
		return 2
	default:
		return 1
	}
}

// ParseAssignments parses "name=value" pairs such as "cutoff_frequency=2.5".
// The value may be "inf" or "+inf".
func ParseAssignments(pairs []string) (map[string]float64, error) {
	values := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: expected name=value, got %q", ErrInvalidConfig, pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %s: %w", ErrInvalidConfig, name, err)
		}
		values[name] = v
	}
	return values, nil
}
