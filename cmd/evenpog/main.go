package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"text/tabwriter"

	evenpog "github.com/tphakala/go-evenpog"
	"github.com/tphakala/go-evenpog/internal/analysis"
)

func main() {
	var (
		sampleRate = flag.Float64("sample-rate", defaultSampleRate, "Sample rate in Hz")
		channels   = flag.Int("channels", defaultChannels, "Number of audio channels")
		capacity   = flag.Int("capacity", 0, "Delay line capacity in samples (0 = default)")
		params     = flag.Bool("params", false, "Print the parameter table and exit")
		demo       = flag.Bool("demo", false, "Run a demonstration")
	)
	flag.Parse()

	if *params {
		printParamTable()
		return
	}

	if *demo {
		runDemo(*sampleRate)
		return
	}

	e, err := evenpog.New(&evenpog.Config{
		SampleRate: *sampleRate,
		Channels:   *channels,
		Capacity:   *capacity,
	})
	if err != nil {
		log.Fatalf("Failed to create effect: %v", err)
	}

	info := e.GetInfo()
	fmt.Printf("Effect created:\n")
	fmt.Printf("  Sample rate: %g Hz\n", info.SampleRate)
	fmt.Printf("  Channels: %d\n", info.Channels)
	fmt.Printf("  Delay capacity: %d samples (%.1f ms)\n",
		info.Capacity, float64(info.Capacity)/info.SampleRate*1000)
	fmt.Printf("  Block size: %d samples\n", info.MaxBlockSize)
	fmt.Printf("  Memory usage: %.2f KB\n", float64(info.MemoryUsage)/bytesPerKilobyte)
	fmt.Printf("  SIMD: %s\n", info.SIMDType)

	fmt.Println("\nProcessing test signal...")
	buf := make([][]float32, info.Channels)
	for ch := range buf {
		buf[ch] = generateTestSignal(testSignalSamples, *sampleRate)
	}

	p := evenpog.DefaultParams()
	if err := e.Process(buf, &p); err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	stats := analysis.Measure(analysis.ToFloat64(buf[0]))
	fmt.Printf("Samples per channel: %d\n", len(buf[0]))
	fmt.Printf("Peak: %.4f at %d, RMS: %.4f, DC: %+.5f\n",
		stats.Peak, stats.PeakIndex, stats.RMS, stats.DCOffset)
}

func printParamTable() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTYPE\tMIN\tMAX\tDEFAULT")
	for _, info := range evenpog.ParamInfos() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%.6g\n",
			info.ID, info.Name, info.Kind, info.Min, info.Max, info.Default)
	}
	_ = tw.Flush()
}

func generateTestSignal(samples int, sampleRate float64) []float32 {
	signal := make([]float32, samples)
	omega := 2 * math.Pi * testSignalFrequency / sampleRate
	for i := range signal {
		signal[i] = float32(testSignalAmplitude * math.Sin(omega*float64(i)))
	}
	return signal
}

func runDemo(sampleRate float64) {
	fmt.Println("=== EvenPog Demo ===")

	// Demo 1: Slur multipliers
	fmt.Println("1. Slur Multiplier")
	fmt.Println("------------------")

	for _, mult := range []float32{0.5, 1.2, 2, 3.7} {
		p := evenpog.DefaultParams()
		p.SlurMultiplier = mult
		p.MixHFJ = 0
		report(fmt.Sprintf("slurrate %.1f", mult), sampleRate, &p)
	}

	// Demo 2: HFJ acceleration
	fmt.Println("\n2. Buffer Acceleration")
	fmt.Println("----------------------")

	for _, accel := range []int{-500, 0, 10, 500} {
		p := evenpog.DefaultParams()
		p.Acceleration = accel
		p.MixSlur = 0
		report(fmt.Sprintf("honkforjesusrate %d", accel), sampleRate, &p)
	}

	// Demo 3: Waveshaper fold
	fmt.Println("\n3. Waveshaper")
	fmt.Println("-------------")

	folded := evenpog.DefaultParams()
	folded.Breakpoints = evenpog.Breakpoints{0.6, -0.4, 0.2, -0.8, 0.4, -0.4, 0.8, -0.2, 0.4, -0.6}
	folded.Gain = 4
	report("folded curve, gain 4", sampleRate, &folded)

	// Demo 4: Multi-channel memory
	fmt.Println("\n4. Multi-channel Memory")
	fmt.Println("-----------------------")

	for _, ch := range []int{monoChannels, stereoChannels, surround5_1, surround7_1} {
		e, err := evenpog.New(&evenpog.Config{SampleRate: sampleRate, Channels: ch})
		if err != nil {
			fmt.Printf("  %d channels: Error - %v\n", ch, err)
			continue
		}
		fmt.Printf("  %d channels: %.1f KB delay storage\n",
			ch, float64(e.GetInfo().MemoryUsage)/bytesPerKilobyte)
	}

	fmt.Println("\n=== Demo Complete ===")
}

func report(label string, sampleRate float64, p *evenpog.Params) {
	out, err := evenpog.ProcessMono(generateTestSignal(testSignalSamples, sampleRate), sampleRate, p)
	if err != nil {
		fmt.Printf("  %s: Error - %v\n", label, err)
		return
	}

	x := analysis.ToFloat64(out)
	stats := analysis.Measure(x)
	line := fmt.Sprintf("  %-24s peak %.3f  rms %.3f", label, stats.Peak, stats.RMS)

	if sp, err := analysis.NewSpectrum(x, sampleRate); err == nil {
		line += fmt.Sprintf("  dominant %.0f Hz", sp.Frequency(sp.Dominant()))
	}
	fmt.Println(line)
}
