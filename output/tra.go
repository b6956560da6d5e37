package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/qcri/trs2xml/transcript"
)

const (
	DefaultNonSpeechMarker = "@@@"
	unknownSpeaker         = "unknown"
)

// TRA writes the tab-delimited training format. The scoring columns are fixed
// because the input is a reference transcript, not a hypothesis.
type TRA struct {
	// Speakers, when non-empty, names the speaker of each utterance by position.
	Speakers        []string
	SkipNonSpeech   bool
	NonSpeechMarker string // defaults to DefaultNonSpeechMarker
}

func (tr TRA) Write(w io.Writer, t *transcript.Transcript) error {
	if len(tr.Speakers) > 0 && len(tr.Speakers) != len(t.Utterances) {
		return fmt.Errorf("%w: %d speakers for %d utterances", ErrSpeakerCount, len(tr.Speakers), len(t.Utterances))
	}
	marker := tr.NonSpeechMarker
	if marker == "" {
		marker = DefaultNonSpeechMarker
	}

	bw := bufio.NewWriter(w)
	for i, u := range t.Utterances {
		if tr.SkipNonSpeech && strings.HasPrefix(u.Text, marker) {
			continue
		}
		tokens, awd, err := wordDuration(u)
		if err != nil {
			bw.Flush()
			return fmt.Errorf("tra utterance %d: %w", i, err)
		}
		speaker := unknownSpeaker
		if len(tr.Speakers) > 0 {
			speaker = strings.ReplaceAll(tr.Speakers[i], " ", "-")
		}
		n := len(tokens)
		_, err = fmt.Fprintf(bw, "%s.xml_%s_%s_%s %s\tWords:%d Correct:%d\tCorrect:100\tIns:0\tDel:0\tWMER:0.0\tPMER:0.0\tAWD:%2f\tStart:1\tEnd:1\n",
			t.ID, speaker, Timestamp(u.Start), Timestamp(u.End), u.Text, n, n, awd)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Timestamp formats seconds as HH:MM:SS,CC. Hours wrap at 24 and the
// centiseconds are truncated, not rounded.
func Timestamp(sec float64) string {
	whole := math.Trunc(sec)
	cs := int((sec - whole) * 100)
	s := int64(whole)
	return fmt.Sprintf("%02d:%02d:%02d,%02d", (s/3600)%24, (s/60)%60, s%60, cs)
}
