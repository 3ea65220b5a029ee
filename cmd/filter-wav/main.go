// Command filter-wav runs every channel of a WAV file through a sensor filter.
//
// Usage:
//
//	filter-wav -kind butterworth -param cutoff_frequency=200 input.wav output.wav
//	filter-wav -kind averaging -param stability=0.99 -param step_change=0.5 in.wav out.wav
//	filter-wav -parallel=false -v 1 -logtostderr input.wav output.wav
//
// The Butterworth sampling frequency defaults to the file's sample rate.
// Channels are filtered concurrently unless -parallel=false.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	sensorfilter "github.com/tphakala/go-sensor-filter"
)

const (
	// Number of frames per chunk
	bufferSize = 65536

	monoChannels = 1

	// Sample format constants
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV audio format code for integer PCM
	wavFormatPCM = 1

	// Default low-pass cutoff in Hz when no cutoff_frequency param is given
	defaultCutoffHz = 1000.0

	progressInterval = 10 // Log progress every N%
	percentScale     = 100
	minRequiredArgs  = 2
)

// paramList collects repeated -param name=value flags.
type paramList []string

func (p *paramList) String() string { return strings.Join(*p, ",") }

func (p *paramList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	defer glog.Flush()
	if err := run(); err != nil {
		glog.Exit(err)
	}
}

func run() error {
	var params paramList
	kindName := flag.String("kind", sensorfilter.KindButterworth.String(), "Filter kind: averaging, clipping, exponential, butterworth")
	parallel := flag.Bool("parallel", true, "Filter channels concurrently")
	flag.Var(&params, "param", "Filter parameter as name=value (repeatable)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}

	kind, err := sensorfilter.ParseKind(*kindName)
	if err != nil {
		return err
	}
	values, err := sensorfilter.ParseAssignments(params)
	if err != nil {
		return err
	}

	inputPath, outputPath := args[0], args[1]
	glog.V(1).Infof("Input: %s", inputPath)
	glog.V(1).Infof("Output: %s", outputPath)
	glog.V(1).Infof("Filter: %s %v", kind, values)

	start := time.Now()
	stats, err := filterWAV(inputPath, outputPath, kind, values, *parallel)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Filtered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %s, %d Hz, %d channels, %d-bit\n", kind, stats.rate, stats.channels, stats.bitDepth)
	fmt.Printf("  %d samples\n", stats.samples)
	for ch, p := range stats.params {
		fmt.Printf("  Channel %d: swing %.6f, %v\n", ch, stats.swings[ch], p)
	}
	if elapsed > 0 && stats.rate > 0 {
		fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
			elapsed.Seconds(),
			float64(stats.samples)/float64(stats.rate)/elapsed.Seconds())
	}

	return nil
}

type filterStats struct {
	rate     int
	channels int
	bitDepth int
	samples  int64
	swings   []float64
	params   []map[string]float64
}

func filterWAV(inputPath, outputPath string, kind sensorfilter.Kind, params map[string]float64, parallel bool) (stats *filterStats, err error) {
	input, err := openWAVInput(inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	bank, err := createChannelBank(kind, input.channels, input.rate, params, parallel)
	if err != nil {
		return nil, err
	}

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// The encoder writes the final header sizes on Close.
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	buffers := newFilterBuffers(input.channels, input.bitDepth, input.format)
	stats = &filterStats{
		rate:     input.rate,
		channels: input.channels,
		bitDepth: input.bitDepth,
	}
	progress := newProgressTracker(input.totalSamples)

	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / input.channels
		stats.samples += int64(frames)

		deinterleaveInto(buffers.intBuffer.Data, buffers.channelBufs, input.channels, frames, buffers.invMaxVal)

		filtered, err := bank.ProcessMulti(channelViews(buffers.channelBufs, frames))
		if err != nil {
			return nil, err
		}

		outputLen := interleaveInto(filtered, buffers.outputIntBuf, buffers.maxVal)
		if err := output.WriteSamples(buffers.outputIntBuf[:outputLen]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		progress.reportIfNeeded(stats.samples)
	}

	for ch := range bank.Channels() {
		f, err := bank.Channel(ch)
		if err != nil {
			return nil, err
		}
		stats.swings = append(stats.swings, f.Swing())
		stats.params = append(stats.params, sensorfilter.Snapshot(f))
	}

	return stats, nil
}
