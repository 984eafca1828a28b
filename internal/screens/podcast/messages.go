package podcast

import (
	"time"

	pc "github.com/abhisek/prepdeck/internal/podcast"
)

// generatedMsg carries a finished transcript generation.
type generatedMsg struct {
	EpisodeID  string
	Transcript pc.Transcript
	Err        error
}

// tickMsg advances a playing player. Seq ties it to one play run so a
// pause-play sequence does not start a second clock.
type tickMsg struct {
	Seq  int
	Time time.Time
}
