package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/qcri/trs2xml/transcript"
)

var (
	ErrEmptyText    = errors.New("utterance has no tokens")
	ErrSpeakerCount = errors.New("speaker list does not match utterances")
)

// Writer serialises a finished transcript.
type Writer interface {
	Write(w io.Writer, t *transcript.Transcript) error
}

type Mode string

const (
	ModeXML  Mode = "xml"
	ModeSTM  Mode = "stm"
	ModeCTM  Mode = "ctm"
	ModeTRA  Mode = "tra"
	ModeJSON Mode = "json"
)

// Options carries the per-mode settings; each writer reads only its own.
type Options struct {
	Speakers         []string
	SkipNonSpeech    bool
	NonSpeechMarker  string
	CTMAdvanceCursor bool
	SchemaLocation   string
	AnnotationID     string
}

func New(mode Mode, o Options) (Writer, error) {
	switch Mode(strings.ToLower(string(mode))) {
	case ModeXML, "":
		return XML{SchemaLocation: o.SchemaLocation, AnnotationID: o.AnnotationID}, nil
	case ModeSTM:
		return STM{}, nil
	case ModeCTM:
		return CTM{AdvanceCursor: o.CTMAdvanceCursor}, nil
	case ModeTRA:
		return TRA{Speakers: o.Speakers, SkipNonSpeech: o.SkipNonSpeech, NonSpeechMarker: o.NonSpeechMarker}, nil
	case ModeJSON:
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown output mode: %s", mode)
	}
}

// wordDuration divides the utterance span evenly over its tokens.
func wordDuration(u transcript.Utterance) ([]string, float64, error) {
	tokens := u.Tokens()
	if len(tokens) == 0 {
		return nil, 0, fmt.Errorf("%w: [%.2f, %.2f]", ErrEmptyText, u.Start, u.End)
	}
	return tokens, u.Duration() / float64(len(tokens)), nil
}
