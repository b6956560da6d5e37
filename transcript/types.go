package transcript

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformed      = errors.New("malformed document")
	ErrNoUtterances   = errors.New("no utterances")
	ErrUnknownSpeaker = errors.New("unknown speaker")
)

type Utterance struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"` // sec
	End     float64 `json:"end"`   // sec
	Speaker string  `json:"speaker,omitempty"`
}

// Tokens splits the text on whitespace.
func (u Utterance) Tokens() []string { return strings.Fields(u.Text) }

func (u Utterance) Duration() float64 { return u.End - u.Start }

// Transcript is one recording as produced by a Reader.
type Transcript struct {
	ID         string      `json:"id"`
	Start      float64     `json:"start_time"`
	End        float64     `json:"end_time"`
	Utterances []Utterance `json:"utterances"`
	// Speakers holds the known display names, first-seen order. Informational
	// only: writers derive speaker declarations from the utterances.
	Speakers []string `json:"speakers,omitempty"`
}

// Validate checks the ordering and span invariants of a finished transcript.
func (t *Transcript) Validate() error {
	if len(t.Utterances) == 0 {
		return ErrNoUtterances
	}
	for i, u := range t.Utterances {
		if u.End < u.Start {
			return fmt.Errorf("%w: utterance %d ends at %.2f before its start %.2f", ErrMalformed, i, u.End, u.Start)
		}
		if i > 0 && u.Start < t.Utterances[i-1].Start {
			return fmt.Errorf("%w: utterance %d starts at %.2f before utterance %d", ErrMalformed, i, u.Start, i-1)
		}
	}
	return nil
}
