package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	cfg "github.com/qcri/trs2xml/config"
	"github.com/qcri/trs2xml/output"
	"github.com/qcri/trs2xml/transcript"
)

// Stdout as a destination path writes to standard output.
const Stdout = "-"

type Pipeline struct {
	cfg *cfg.Root
	log logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: c, log: log}
}

// Run converts srcPath into dstPath. A failure while writing leaves whatever
// was already written in place.
func (p *Pipeline) Run(ctx context.Context, srcPath, dstPath string) error {
	reader, err := p.reader()
	if err != nil {
		return err
	}

	var speakers []string
	if path := p.cfg.Input.Speakers; path != "" {
		if speakers, err = transcript.LoadSpeakers(path); err != nil {
			return err
		}
		p.log.WithFields(logrus.Fields{"path": path, "speakers": len(speakers)}).Debug("speaker list loaded")
	}

	writer, err := output.New(output.Mode(p.cfg.Output.Mode), output.Options{
		Speakers:         speakers,
		SkipNonSpeech:    p.cfg.Output.SkipNonSpeech,
		NonSpeechMarker:  p.cfg.Output.NonSpeechMarker,
		CTMAdvanceCursor: p.cfg.Output.CTMAdvanceCursor,
		SchemaLocation:   p.cfg.Output.SchemaLocation,
		AnnotationID:     p.cfg.Output.AnnotationID,
	})
	if err != nil {
		return err
	}

	tr, err := readFile(reader, srcPath)
	if err != nil {
		return err
	}
	if p.cfg.Input.ID != "" {
		tr.ID = p.cfg.Input.ID
	}

	st := transcript.Summarize(tr)
	p.log.WithFields(logrus.Fields{
		"id":          tr.ID,
		"format":      p.cfg.Input.Format,
		"utterances":  st.Utterances,
		"tokens":      st.Tokens,
		"speech_sec":  fmt.Sprintf("%.2f", st.Speech),
		"overlap_sec": fmt.Sprintf("%.2f", st.Overlap),
		"speakers":    len(lo.Without(lo.Keys(st.SpeakingShare), "")),
	}).Info("transcript loaded")

	if err := ctx.Err(); err != nil {
		return err
	}

	dst, done, err := create(dstPath)
	if err != nil {
		return err
	}
	if err := writer.Write(dst, tr); err != nil {
		_ = done()
		return fmt.Errorf("write %s: %w", dstPath, err)
	}
	if err := done(); err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{"mode": p.cfg.Output.Mode, "path": dstPath}).Info("output written")
	return nil
}

func (p *Pipeline) reader() (transcript.Reader, error) {
	switch strings.ToLower(p.cfg.Input.Format) {
	case "", "trs":
		return transcript.TranscriberReader{
			SkipOverlaps:  p.cfg.Input.SkipOverlaps,
			OverlapMarker: p.cfg.Input.OverlapMarker,
		}, nil
	case "mgb":
		return transcript.MGBReader{}, nil
	default:
		return nil, fmt.Errorf("unknown input format: %s", p.cfg.Input.Format)
	}
}

func readFile(r transcript.Reader, path string) (*transcript.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tr, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tr, nil
}

func create(path string) (io.Writer, func() error, error) {
	if path == Stdout {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
