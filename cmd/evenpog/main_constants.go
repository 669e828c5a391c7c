package main

// Default command-line flag values
const (
	defaultSampleRate = 48000.0 // DAT/DVD sample rate
	defaultChannels   = 2       // Stereo
)

// Test signal parameters
const (
	testSignalFrequency = 220.0 // A3, low enough for the slur head to fold visibly
	testSignalAmplitude = 0.8
	testSignalSamples   = 4800 // 100 ms at the default rate
)

// Demo channel configurations
const (
	monoChannels   = 1
	stereoChannels = 2
	surround5_1    = 6
	surround7_1    = 8
)

// Memory conversion
const (
	bytesPerKilobyte = 1024
)
