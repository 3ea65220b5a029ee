// Package sensorfilter provides real-time conditioning of scalar sensor readings in pure Go.
//
// Readings arrive one at a time and are smoothed, checked for abrupt
// discontinuities and summarized by a running range before being consumed by
// control logic or diagnostics displays.
//
// # Features
//
//   - Four strategies behind one [Filter] interface: [Averaging], [Clipping],
//     [Exponential] and an N-th order [Butterworth] low-pass designed at runtime
//   - Step change detection: a reading that differs from the current value by
//     at least the threshold re-baselines the filter instead of being smoothed
//   - A monotone min/max envelope (swing) that can be reset on demand
//   - Synchronous change observers, with a glog adapter in [LogObserver]
//   - A named-parameter surface for generic configuration binders
//   - Multi-channel [Bank] with optional per-channel goroutines
//
// # Quick Start
//
// Smoothing a polled sensor at 10 Hz with a 0.5 Hz cutoff:
//
//	lp := sensorfilter.NewLowPass(10, 0.5)
//	for raw := range readings {
//	    v := lp.Update(raw)
//	    display(v, lp.Swing())
//	}
//
// Building a filter from configuration:
//
//	cfg := sensorfilter.DefaultConfig(sensorfilter.KindAveraging)
//	cfg.Stability = 0.9
//	cfg.StepChange = 5
//	f, err := sensorfilter.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Step Changes
//
// Every filter carries a step change threshold, +Inf by default. When
// |raw - value| reaches it, or either side is NaN, [Filter.Update] calls
// [Filter.Initialize] instead of [Filter.Filter]: the value jumps to the
// reading and the envelope collapses onto it. A threshold of 0 therefore
// disables smoothing altogether.
//
// A NaN reading is stored as the new baseline; the next reading re-baselines
// again because NaN always counts as a step change.
//
// # Butterworth Design
//
// The Butterworth filter is designed whenever it initializes with a stale
// configuration:
//
//	prewarp cutoff -> analog poles on a circle, zeros at s = -1
//	    -> bilinear transform
//	    -> expand (z - root) products -> normalize DC gain -> prime history
//
// Steady-state filtering walks two fixed-size circular buffers of past
// inputs and outputs, overwriting the oldest slot in place, so each reading
// costs O(order) with no allocation. If cutoff/sampling frequency falls
// outside (0, 0.5) the filter passes readings through and stays
// uninitialized until the configuration is corrected.
//
// # Thread Safety
//
// Filters are single-writer state machines with no internal locking. Feed
// each instance from one goroutine, or serialize access externally.
// Observers run inline on the writer's goroutine. [Bank.ProcessMulti] may
// process different channels concurrently because every channel owns its
// own filter.
package sensorfilter
