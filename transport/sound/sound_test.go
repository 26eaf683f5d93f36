package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockfall/game/service"
)

func TestCuesFor(t *testing.T) {
	tests := []struct {
		name  string
		event service.GameEvent
		want  int
	}{
		{"single line", service.GameEvent{Type: service.EventLineClear, Lines: 1}, 1},
		{"four lines", service.GameEvent{Type: service.EventLineClear, Lines: 4}, 4},
		{"clamped", service.GameEvent{Type: service.EventLineClear, Lines: 9}, 4},
		{"level up", service.GameEvent{Type: service.EventLevelUp}, 2},
		{"game over", service.GameEvent{Type: service.EventGameOver}, 2},
		{"lock", service.GameEvent{Type: service.EventLock}, 1},
		{"silent move", service.GameEvent{Type: service.EventMove}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, CuesFor(tt.event), tt.want)
		})
	}
}

func TestCuesFor_LineClearRises(t *testing.T) {
	cues := CuesFor(service.GameEvent{Type: service.EventLineClear, Lines: 3})
	require.Len(t, cues, 3)
	assert.Less(t, cues[0].Freq, cues[1].Freq)
	assert.Less(t, cues[1].Freq, cues[2].Freq)
}

func TestSpeaker_HandleBuildsStreams(t *testing.T) {
	var played []beep.Streamer
	s := &Speaker{
		sampleRate: SampleRate,
		play:       func(st ...beep.Streamer) { played = append(played, st...) },
	}

	s.Handle([]service.GameEvent{
		{Type: service.EventMove},
		{Type: service.EventLock},
		{Type: service.EventLineClear, Lines: 2},
	})
	require.Len(t, played, 2)

	// The two-line cue is two 60ms tones back to back
	want := SampleRate.N(120 * time.Millisecond)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := played[1].Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, want, total)
}

func TestNop(t *testing.T) {
	var p Player = Nop{}
	p.Handle([]service.GameEvent{{Type: service.EventGameOver}})
}
