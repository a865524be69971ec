package audio

import (
	"fmt"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/golang/glog"
)

const (
	wavBitDepth    = 16
	wavPCMFormat   = 1
	wavChunkFrames = 4096
)

// WAVRecorder streams samples to a 16-bit mono WAV file
type WAVRecorder struct {
	mu       sync.Mutex
	filename string
	file     *os.File
	encoder  *wav.Encoder
	chunk    *goaudio.IntBuffer
	written  uint64
	closed   bool
}

// NewWAVRecorder creates filename and prepares a WAV encoder at sampleRate
func NewWAVRecorder(filename string, sampleRate int) (*WAVRecorder, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return &WAVRecorder{
		filename: filename,
		file:     f,
		encoder:  wav.NewEncoder(f, sampleRate, wavBitDepth, 1, wavPCMFormat),
		chunk: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:           make([]int, 0, wavChunkFrames),
			SourceBitDepth: wavBitDepth,
		},
	}, nil
}

// WriteSample implements the APU sample sink
func (w *WAVRecorder) WriteSample(sample float32) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("wav: write to closed recorder %s", w.filename)
	}
	w.chunk.Data = append(w.chunk.Data, int(toPCM16(sample)))
	if len(w.chunk.Data) >= wavChunkFrames {
		return w.flush()
	}
	return nil
}

func (w *WAVRecorder) flush() error {
	if len(w.chunk.Data) == 0 {
		return nil
	}
	if err := w.encoder.Write(w.chunk); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	w.written += uint64(len(w.chunk.Data))
	w.chunk.Data = w.chunk.Data[:0]
	return nil
}

// Written returns the number of samples committed to the encoder
func (w *WAVRecorder) Written() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written + uint64(len(w.chunk.Data))
}

// Close flushes pending samples, finalises the header and closes the file
func (w *WAVRecorder) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.flush()
	if cerr := w.encoder.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("wav: %w", cerr)
	}
	if cerr := w.file.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("wav: %w", cerr)
	}
	if err == nil {
		glog.Infof("[AUDIO] wrote %d samples to %s", w.written, w.filename)
	}
	return err
}
