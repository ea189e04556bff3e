package transcode

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// decodeWAVFile reads a PCM WAV file natively, avoiding an ffmpeg round trip.
// Only files already at the target sample rate qualify; anything else
// (float WAV, other rates) returns an error so the caller can fall back.
func (d *Decoder) decodeWAVFile(filename string) (*AudioData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", filename)
	}

	if int(decoder.SampleRate) != d.config.TargetSampleRate {
		return nil, fmt.Errorf("WAV sample rate %d differs from target %d, resampling required",
			decoder.SampleRate, d.config.TargetSampleRate)
	}

	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("unsupported WAV audio format %d", decoder.WavAudioFormat)
	}

	if decoder.BitDepth == 0 || decoder.NumChans == 0 {
		return nil, fmt.Errorf("WAV header missing bit depth or channel count")
	}

	duration, err := decoder.Duration()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV duration: %w", err)
	}

	numChans := int(decoder.NumChans)
	totalSamples := int(duration.Seconds()*float64(decoder.SampleRate)) * numChans
	if totalSamples == 0 {
		return nil, fmt.Errorf("no samples in %s", filename)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChans,
			SampleRate:  int(decoder.SampleRate),
		},
		Data:           make([]int, totalSamples),
		SourceBitDepth: int(decoder.BitDepth),
	}

	n, err := decoder.PCMBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV samples: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("no samples decoded from %s", filename)
	}

	// Scale to [-1, 1] and downmix interleaved channels to mono
	maxVal := float64(int(1) << (uint(decoder.BitDepth) - 1))
	data := buf.Data[:n]

	numFrames := len(data) / numChans
	samples := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		sum := 0.0
		for c := 0; c < numChans; c++ {
			sum += float64(data[i*numChans+c]) / maxVal
		}
		samples[i] = sum / float64(numChans)
	}

	actualDuration := time.Duration(numFrames) * time.Second / time.Duration(d.config.TargetSampleRate)

	return &AudioData{
		PCM:        samples,
		SampleRate: d.config.TargetSampleRate,
		Channels:   1,
		Duration:   actualDuration,
		Metadata: &AudioMetadata{
			SampleRate: int(decoder.SampleRate),
			Channels:   numChans,
			Codec:      "pcm",
			Duration:   duration.Seconds(),
			Format:     "WAV / PCM",
		},
	}, nil
}
