// Command condition smooths a stream of sensor readings.
//
// Readings are read one per line (or one CSV column per line) from a file or
// stdin. Each reading is fed through a filter and a CSV row is written with
// the filtered value, the swing envelope and the step change / noise flags.
//
// Usage:
//
//	condition -kind averaging -param stability=0.9 -param step_change=5 readings.csv
//	condition -kind butterworth -param sampling_frequency=10 -param cutoff_frequency=0.5 < log.txt
//	condition -demo
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	sensorfilter "github.com/tphakala/go-sensor-filter"
)

var outputHeader = []string{"raw", "value", "swing_low", "swing_high", "step_change", "noise"}

// paramList collects repeated -param name=value flags.
type paramList []string

func (p *paramList) String() string { return strings.Join(*p, ",") }

func (p *paramList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// options controls how readings are parsed and reported.
type options struct {
	column     int
	skipHeader bool
	resetEvery int
}

func main() {
	var params paramList
	var (
		kindName   = flag.String("kind", defaultKind, "Filter kind: averaging, clipping, exponential, butterworth")
		column     = flag.Int("column", defaultColumn, "Zero-based CSV column holding the reading")
		skipHeader = flag.Bool("header", false, "Skip the first input line")
		resetEvery = flag.Int("reset-swing", 0, "Collapse the swing envelope every N readings (0 disables)")
		observe    = flag.Bool("observe", false, "Log every property change (shown at -v=2)")
		demo       = flag.Bool("demo", false, "Run a demonstration on a synthetic signal")
	)
	flag.Var(&params, "param", "Filter parameter as name=value (repeatable)")
	flag.Parse()
	defer glog.Flush()

	if *demo {
		runDemo(os.Stdout)
		return
	}

	f, err := newFilter(*kindName, params)
	if err != nil {
		glog.Exitf("unable to create filter: %s", err)
	}
	if *observe {
		f.AddObserver(sensorfilter.LogObserver(f.Kind().String()))
	}

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		file, err := os.Open(flag.Arg(0))
		if err != nil {
			glog.Exitf("unable to open %q: %s", flag.Arg(0), err)
		}
		defer func() { _ = file.Close() }()
		in = file
	}

	opts := options{column: *column, skipHeader: *skipHeader, resetEvery: *resetEvery}
	n, err := condition(in, os.Stdout, f, opts)
	if err != nil {
		glog.Exitf("conditioning failed after %d readings: %s", n, err)
	}
	glog.V(1).Infof("Conditioned %d readings, final %+v", n, sensorfilter.GetInfo(f))
}

// newFilter builds a filter of the named kind and applies name=value pairs.
func newFilter(kindName string, pairs []string) (sensorfilter.Filter, error) {
	kind, err := sensorfilter.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	cfg := sensorfilter.DefaultConfig(kind)
	f, err := sensorfilter.New(&cfg)
	if err != nil {
		return nil, err
	}

	values, err := sensorfilter.ParseAssignments(pairs)
	if err != nil {
		return nil, err
	}
	if err := sensorfilter.Apply(f, values); err != nil {
		return nil, err
	}
	glog.V(1).Infof("Filter %s: %v", kind, sensorfilter.Snapshot(f))
	return f, nil
}

// condition feeds every reading from r through f and writes one CSV row per
// accepted reading to w. Lines whose reading column does not parse are
// logged and skipped. Returns the number of readings fed.
func condition(r io.Reader, w io.Writer, f sensorfilter.Filter, opts options) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	writer := csv.NewWriter(w)
	if err := writer.Write(outputHeader); err != nil {
		return 0, err
	}

	row := make([]string, len(outputHeader))
	n := 0
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("reading input: %w", err)
		}
		line++
		if line == 1 && opts.skipHeader {
			continue
		}

		raw, err := parseReading(record, opts.column)
		if err != nil {
			glog.Warningf("line %d: %s", line, err)
			continue
		}

		step := f.IsStepChange(raw) && f.Initialized()
		noise := f.LooksLikeNoise(raw)
		value := f.Update(raw)
		n++

		row[0] = formatFloat(raw)
		row[1] = formatFloat(value)
		row[2] = formatFloat(f.SwingLow())
		row[3] = formatFloat(f.SwingHigh())
		row[4] = strconv.FormatBool(step)
		row[5] = strconv.FormatBool(noise)
		if err := writer.Write(row); err != nil {
			return n, err
		}

		if opts.resetEvery > 0 && n%opts.resetEvery == 0 {
			f.ResetSwing()
		}
	}

	writer.Flush()
	return n, writer.Error()
}

func parseReading(record []string, column int) (float64, error) {
	if column < 0 || column >= len(record) {
		return 0, fmt.Errorf("no column %d in %d fields", column, len(record))
	}
	return strconv.ParseFloat(strings.TrimSpace(record[column]), 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', floatPrecision, 64)
}

// demoSignal returns a level with ripple, one glitch and one real level shift.
func demoSignal() []float64 {
	signal := make([]float64, demoSamples)
	for i := range signal {
		signal[i] = demoLevel + demoRipple*math.Sin(2*math.Pi*demoRippleCycles*float64(i))
		if i == demoGlitchAt {
			signal[i] += demoGlitch
		}
		if i >= demoJumpAt {
			signal[i] += demoJump
		}
	}
	return signal
}

func runDemo(w io.Writer) {
	fmt.Fprintln(w, "=== Sensor Conditioning Demo ===")
	fmt.Fprintf(w, "Signal: level %.0f with ±%.1f ripple, a %.0f glitch at %d and a %.0f step at %d\n\n",
		demoLevel, demoRipple, demoGlitch, demoGlitchAt, demoJump, demoJumpAt)

	signal := demoSignal()

	for _, kind := range []sensorfilter.Kind{
		sensorfilter.KindAveraging,
		sensorfilter.KindClipping,
		sensorfilter.KindExponential,
		sensorfilter.KindButterworth,
	} {
		cfg := sensorfilter.DefaultConfig(kind)
		cfg.Stability = demoStability
		cfg.StepChange = demoStepChange
		cfg.CutoffFrequency = demoCutoff
		f, err := sensorfilter.New(&cfg)
		if err != nil {
			fmt.Fprintf(w, "%s: Error - %v\n", kind, err)
			continue
		}

		steps, noisy := 0, 0
		out := make([]float64, len(signal))
		for i, raw := range signal {
			if f.Initialized() && f.IsStepChange(raw) {
				steps++
			}
			if f.LooksLikeNoise(raw) {
				noisy++
			}
			out[i] = f.Update(raw)
		}

		fmt.Fprintf(w, "%-12s glitch %.3f  before step %.3f  after step %.3f  swing %.3f  steps %d  noisy %d\n",
			kind, out[demoGlitchAt], out[demoJumpAt-1], out[demoJumpAt], f.Swing(), steps, noisy)
	}

	fmt.Fprintln(w, "\n=== Demo Complete ===")
}
