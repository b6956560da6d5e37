package output

import (
	"encoding/json"
	"io"

	"github.com/qcri/trs2xml/transcript"
)

// JSON dumps the intermediate model, mostly for inspecting reader output.
type JSON struct{}

type jsonBundle struct {
	*transcript.Transcript
	Stats transcript.Stats `json:"stats"`
}

func (JSON) Write(w io.Writer, t *transcript.Transcript) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonBundle{Transcript: t, Stats: transcript.Summarize(t)})
}
