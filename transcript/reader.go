package transcript

import "io"

// Reader builds a finished Transcript from a source document.
type Reader interface {
	Read(r io.Reader) (*Transcript, error)
}

var (
	_ Reader = TranscriberReader{}
	_ Reader = MGBReader{}
)
