package sound

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	recordBitDepth = 16
	wavFormatPCM   = 1
)

// Recorder writes beeper samples to a 16-bit mono PCM WAV file.
type Recorder struct {
	file    *os.File
	encoder *wav.Encoder
	buffer  *audio.IntBuffer
	samples int
}

// NewRecorder creates the WAV file at the given path.
func NewRecorder(path string, sampleRate int) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating audio file %s: %w", path, err)
	}

	return &Recorder{
		file:    file,
		encoder: wav.NewEncoder(file, sampleRate, recordBitDepth, 1, wavFormatPCM),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: 1,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: recordBitDepth,
		},
	}, nil
}

// Write appends unsigned 8-bit samples to the recording.
func (r *Recorder) Write(samples []uint8) error {
	if len(samples) == 0 {
		return nil
	}

	data := r.buffer.Data[:0]
	for _, sample := range samples {
		data = append(data, (int(sample)-Silence)<<8)
	}
	r.buffer.Data = data

	if err := r.encoder.Write(r.buffer); err != nil {
		return fmt.Errorf("encoding samples: %w", err)
	}
	r.samples += len(samples)
	return nil
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int {
	return r.samples
}

// Close finalizes the WAV header and closes the file.
func (r *Recorder) Close() error {
	if err := r.encoder.Close(); err != nil {
		_ = r.file.Close()
		return fmt.Errorf("finalizing wav file: %w", err)
	}
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("closing audio file: %w", err)
	}
	return nil
}
