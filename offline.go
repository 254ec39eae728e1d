package ambitone

import (
	"encoding/binary"
	"math"

	intengine "github.com/ambitone/ambitone-go/internal/engine"
)

// RenderSamples renders a session offline through the same graph and
// gain path the live device drives, returning interleaved stereo
// float32 frames. The fade-in ramp is part of the output, exactly as a
// listener would hear it.
func RenderSamples(cfg Config, sampleRate int, seconds float64) ([]float32, error) {
	graph, err := buildGraph(cfg, sampleRate)
	if err != nil {
		return nil, err
	}
	params := intengine.NewParams(1, cfg.FreqLeft, cfg.FreqRight)
	renderer := intengine.NewRenderer(graph, params, sampleRate, defaultFade.Seconds(), false)
	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*2)
	renderer.Process(out)
	return out, nil
}

const (
	wavHeaderSize    = 44
	wavFmtChunkSize  = 16
	wavFormatFloat   = 3 // IEEE float, as opposed to 1 for PCM
	wavBitsPerSample = 32
)

// EncodeWAVFloat32LE wraps interleaved samples in a WAV container with
// IEEE-float encoding.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	bytesPerFrame := channels * wavBitsPerSample / 8
	dataSize := len(samples) * 4

	out := make([]byte, wavHeaderSize+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(wavHeaderSize-8+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], wavFmtChunkSize)
	binary.LittleEndian.PutUint16(out[20:], wavFormatFloat)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*bytesPerFrame))
	binary.LittleEndian.PutUint16(out[32:], uint16(bytesPerFrame))
	binary.LittleEndian.PutUint16(out[34:], wavBitsPerSample)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[wavHeaderSize+i*4:], math.Float32bits(s))
	}
	return out
}
