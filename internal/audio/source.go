package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Source is a decoded, seekable audio asset.
type Source struct {
	Streamer beep.StreamSeeker
	Format   beep.Format

	closer io.Closer
}

// Open decodes the asset at path. mp3 and wav are supported.
func Open(path string) (*Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("audio: no asset path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("audio: unsupported format %q", ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return &Source{Streamer: s, Format: format, closer: s}, nil
}

// NewSource wraps an in-memory streamer.
func NewSource(s beep.StreamSeeker, format beep.Format) *Source {
	return &Source{Streamer: s, Format: format}
}

func (s *Source) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Output is the audio device.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

// SpeakerOutput plays through the system audio device.
func SpeakerOutput() Output { return speakerOutput{} }

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }
func (speakerOutput) Close()                  { speaker.Close() }
