// SPDX-License-Identifier: EPL-2.0

// Package audio holds the PCM format description and the small streaming
// primitives shared by the codecs.
//
// # Format
//
// Format is caller supplied metadata for headerless little-endian PCM:
//
//	f := audio.PCM16(24000, 1) // same as audio.GeminiFormat
//	f.BlockAlign()              // 2
//	f.ByteRate()                // 48000
//	f.Duration(len(pcm))
//
// Validate rejects zero fields and depths that are not whole bytes.
// CheckAlignment reports ErrMalformedAudio for a byte count that ends with a
// partial frame; callers decide whether that is fatal.
//
// # Source Interface
//
// Decoders produce a Source of interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is drained.
//
// # Registry
//
// A Registry maps a format key, usually a file extension, to a Decoder:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("pcm", pcm.Decoder{Format: audio.GeminiFormat})
//	src, err := reg.Open("wav", file)
//
// # Levels
//
// MonoMixer averages interleaved frames into one channel. Measure drains a
// Source through it and reports frames, duration, peak and RMS:
//
//	st, err := audio.Measure(src, 0)
//	fmt.Printf("%v, peak %.1f dBFS\n", st.Duration, st.PeakDBFS())
package audio
