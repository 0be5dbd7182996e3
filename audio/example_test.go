// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/ttswav/audio"
	"github.com/ik5/ttswav/formats/pcm"
)

// Example_format shows the values derived from a Format.
func Example_format() {
	f := audio.GeminiFormat

	fmt.Println(f)
	fmt.Printf("Block align: %d bytes\n", f.BlockAlign())
	fmt.Printf("Byte rate: %d bytes/s\n", f.ByteRate())
	fmt.Printf("48000 bytes last %v\n", f.Duration(48000))
	// Output:
	// 24000 Hz, 1 ch, 16 bit
	// Block align: 2 bytes
	// Byte rate: 48000 bytes/s
	// 48000 bytes last 1s
}

// Example_registry demonstrates decoder lookup by format key.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("pcm", pcm.Decoder{Format: audio.GeminiFormat})

	// two 16-bit samples
	raw := []byte{0x00, 0x40, 0x00, 0xC0}

	src, err := registry.Open("pcm", bytes.NewReader(raw))
	if err != nil {
		fmt.Println("open error:", err)
		return
	}
	defer src.Close()

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Println("read error:", err)
		return
	}

	fmt.Println(registry.Formats())
	fmt.Println(buf[:n])
	// Output:
	// [pcm]
	// [0.5 -0.5]
}

// Example_measure reports the level of a decoded stream.
func Example_measure() {
	raw := []byte{0x00, 0x40, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40}

	src, _ := pcm.Decoder{Format: audio.PCM16(4, 1)}.Decode(bytes.NewReader(raw))

	st, err := audio.Measure(src, 2)
	if err != nil {
		fmt.Println("measure error:", err)
		return
	}

	fmt.Printf("%d frames, %v, peak %.2f\n", st.Frames, st.Duration, st.Peak)
	// Output: 4 frames, 1s, peak 0.50
}
