package game

import (
	"time"
)

// NoteState is the judgment of a single note within one session.
// It lives outside the Note so a Chart can be shared between a live
// session and the editor without interference.
type NoteState uint8

const (
	Pending NoteState = iota
	Hit
	Missed
)

type Note struct {
	Time    time.Duration // The time the note should be hit
	Lane    int           // The input column this note belongs to
	Sustain time.Duration // How long the note should be held, 0 for a tap
}

// End is the time the note stops mattering, including any sustain.
func (n *Note) End() time.Duration {
	return n.Time + n.Sustain
}
