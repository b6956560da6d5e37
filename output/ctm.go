package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/qcri/trs2xml/transcript"
)

// CTM writes one line per token with an evenly divided duration.
//
// By default every token of an utterance carries the utterance start time,
// which is what existing consumers of this output expect. AdvanceCursor moves
// the stamp forward by one interval per token instead.
type CTM struct {
	AdvanceCursor bool
}

func (c CTM) Write(w io.Writer, t *transcript.Transcript) error {
	bw := bufio.NewWriter(w)
	for i, u := range t.Utterances {
		tokens, interval, err := wordDuration(u)
		if err != nil {
			bw.Flush()
			return fmt.Errorf("ctm utterance %d: %w", i, err)
		}
		cursor := u.Start
		for _, tok := range tokens {
			if _, err := fmt.Fprintf(bw, "%s 0 %.2f %.2f %s\n", t.ID, cursor, interval, tok); err != nil {
				return err
			}
			if c.AdvanceCursor {
				cursor += interval
			}
		}
	}
	return bw.Flush()
}
