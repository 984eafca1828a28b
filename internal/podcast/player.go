package podcast

import (
	"fmt"
	"time"
)

// SkipSeconds is the jump of the skip buttons.
const SkipSeconds = 15

// DefaultVolume is the initial volume percentage.
const DefaultVolume = 75

// Player is the playback state of one episode. Positions are in seconds.
type Player struct {
	EpisodeID string
	Duration  float64
	Position  float64
	Playing   bool
	Volume    int
}

// NewPlayer returns a paused player at the start of an episode.
func NewPlayer(episodeID string, durationSeconds int) *Player {
	return &Player{
		EpisodeID: episodeID,
		Duration:  float64(durationSeconds),
		Volume:    DefaultVolume,
	}
}

// Toggle flips between playing and paused. Playing from the end restarts.
func (p *Player) Toggle() {
	if !p.Playing && p.Position >= p.Duration {
		p.Position = 0
	}
	p.Playing = !p.Playing
}

// SkipForward jumps SkipSeconds ahead, stopping at the end.
func (p *Player) SkipForward() {
	p.seekTo(p.Position + SkipSeconds)
}

// SkipBack jumps SkipSeconds back, stopping at the start.
func (p *Player) SkipBack() {
	p.seekTo(p.Position - SkipSeconds)
}

// Seek moves to percent (0-100) of the episode.
func (p *Player) Seek(percent float64) {
	p.seekTo(percent / 100 * p.Duration)
}

func (p *Player) seekTo(pos float64) {
	p.Position = max(0, min(pos, p.Duration))
}

// Advance moves a playing player forward by elapsed. Playback stops at the
// end of the episode.
func (p *Player) Advance(elapsed time.Duration) {
	if !p.Playing {
		return
	}
	p.seekTo(p.Position + elapsed.Seconds())
	if p.Position >= p.Duration {
		p.Playing = false
	}
}

// SetVolume sets the volume, clamped to 0-100.
func (p *Player) SetVolume(v int) {
	p.Volume = max(0, min(v, 100))
}

// Progress returns the played percentage, 0 for an empty episode.
func (p *Player) Progress() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return p.Position / p.Duration * 100
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
