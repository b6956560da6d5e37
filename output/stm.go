package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/qcri/trs2xml/transcript"
)

// STM writes sclite reference lines, one per utterance.
type STM struct{}

func (STM) Write(w io.Writer, t *transcript.Transcript) error {
	bw := bufio.NewWriter(w)
	for _, u := range t.Utterances {
		if _, err := fmt.Fprintf(bw, "%s 0 UNKNOWN %.2f %.2f %s\n", t.ID, u.Start, u.End, u.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}
