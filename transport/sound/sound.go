package sound

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/wricardo/blockfall/game/service"
)

// SampleRate is the speaker sample rate used for all cues
const SampleRate = beep.SampleRate(44100)

// Player turns game events into audible cues
type Player interface {
	Handle(events []service.GameEvent)
}

// Nop is a Player that stays silent
type Nop struct{}

// Handle ignores the events
func (Nop) Handle([]service.GameEvent) {}

// Cue is one tone: a frequency held for a duration
type Cue struct {
	Freq     float64
	Duration time.Duration
}

// CuesFor returns the tones for an event, in playback order
func CuesFor(ev service.GameEvent) []Cue {
	switch ev.Type {
	case service.EventLineClear:
		// One rising note per cleared line
		lines := ev.Lines
		if lines < 1 {
			lines = 1
		}
		if lines > 4 {
			lines = 4
		}
		cues := make([]Cue, 0, lines)
		for i := 0; i < lines; i++ {
			cues = append(cues, Cue{Freq: 523.25 * (1 + 0.25*float64(i)), Duration: 60 * time.Millisecond})
		}
		return cues
	case service.EventLevelUp:
		return []Cue{
			{Freq: 659.25, Duration: 80 * time.Millisecond},
			{Freq: 880, Duration: 120 * time.Millisecond},
		}
	case service.EventGameOver:
		return []Cue{
			{Freq: 330, Duration: 150 * time.Millisecond},
			{Freq: 220, Duration: 300 * time.Millisecond},
		}
	case service.EventLock:
		return []Cue{{Freq: 110, Duration: 25 * time.Millisecond}}
	}
	return nil
}

// Speaker plays cues through the system audio device
type Speaker struct {
	sampleRate beep.SampleRate
	play       func(...beep.Streamer)
	mu         sync.Mutex
}

// NewSpeaker initializes the audio device. Callers should fall back to Nop on error.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &Speaker{
		sampleRate: SampleRate,
		play:       speaker.Play,
	}, nil
}

// Handle plays the cues of every event, one event's tones in sequence
func (s *Speaker) Handle(events []service.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range events {
		cues := CuesFor(ev)
		if len(cues) == 0 {
			continue
		}
		stream, err := s.sequence(cues)
		if err != nil {
			log.Printf("sound: %v", err)
			continue
		}
		s.play(stream)
	}
}

// sequence builds one streamer that plays cues back to back
func (s *Speaker) sequence(cues []Cue) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(cues))
	for _, c := range cues {
		tone, err := generators.SineTone(s.sampleRate, c.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.1fHz: %w", c.Freq, err)
		}
		parts = append(parts, beep.Take(s.sampleRate.N(c.Duration), tone))
	}
	return beep.Seq(parts...), nil
}
