package transcript

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

const DefaultOverlapMarker = "##"

// TranscriberReader reads Transcriber (.trs) documents. Only the first turn of
// the first section of the first episode is considered.
type TranscriberReader struct {
	SkipOverlaps  bool
	OverlapMarker string // defaults to DefaultOverlapMarker
}

// Minimal XML mapping for <Trans>. Only the first Episode, Section and Turn
// are decoded; their siblings are skipped unread, so later turns may carry
// <Who> or <Event> children.
type trsDoc struct {
	AudioFilename string
	Episodes      []trsEpisode
}

type trsEpisode struct {
	Sections []trsSection
}

type trsSection struct {
	Turns []trsTurn
}

func (t *trsDoc) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "Trans" {
		return fmt.Errorf("%w: root element is <%s>, want <Trans>", ErrMalformed, start.Name.Local)
	}
	t.AudioFilename = attr(start, "audio_filename")
	return decodeFirst(d, "Episode", &t.Episodes)
}

func (e *trsEpisode) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	return decodeFirst(d, "Section", &e.Sections)
}

func (s *trsSection) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	return decodeFirst(d, "Turn", &s.Turns)
}

// decodeFirst decodes the first child element called name into dst and skips
// every other child up to the enclosing end tag.
func decodeFirst[T any](d *xml.Decoder, name string, dst *[]T) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			if tk.Name.Local != name || len(*dst) > 0 {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			var v T
			if err := d.DecodeElement(&v, &tk); err != nil {
				return err
			}
			*dst = append(*dst, v)
		case xml.EndElement:
			return nil
		}
	}
}

type trsTurn struct {
	StartTime string
	EndTime   string
	Pairs     []syncText
}

// syncText is one <Sync/> marker and the text node that follows it.
type syncText struct {
	Time float64
	Text string
}

// UnmarshalXML walks the turn body as strict (Sync, text) pairs. Text before
// the first Sync is ignored.
func (t *trsTurn) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "startTime":
			t.StartTime = a.Value
		case "endTime":
			t.EndTime = a.Value
		}
	}

	var (
		pending *syncText
		hasText bool
		text    strings.Builder
	)
	closePair := func() error {
		if pending == nil {
			return nil
		}
		if !hasText {
			return fmt.Errorf("%w: <Sync time=\"%g\"> is not followed by text", ErrMalformed, pending.Time)
		}
		t.Pairs = append(t.Pairs, syncText{Time: pending.Time, Text: text.String()})
		return nil
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			if tk.Name.Local != "Sync" {
				return fmt.Errorf("%w: unexpected <%s> inside <Turn>", ErrMalformed, tk.Name.Local)
			}
			if err := closePair(); err != nil {
				return err
			}
			at, err := parseTime("Sync@time", attr(tk, "time"))
			if err != nil {
				return err
			}
			pending = &syncText{Time: at}
			hasText = false
			text.Reset()
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.CharData:
			if pending != nil {
				text.Write(tk)
				hasText = true
			}
		case xml.EndElement:
			return closePair()
		}
	}
}

func (r TranscriberReader) Read(src io.Reader) (*Transcript, error) {
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charset.NewReaderLabel

	var doc trsDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, fmt.Errorf("trs decode: %w", err)
		}
		return nil, fmt.Errorf("trs decode: %w: %w", ErrMalformed, err)
	}
	if doc.AudioFilename == "" {
		return nil, fmt.Errorf("%w: missing Trans@audio_filename", ErrMalformed)
	}
	if len(doc.Episodes) == 0 || len(doc.Episodes[0].Sections) == 0 || len(doc.Episodes[0].Sections[0].Turns) == 0 {
		return nil, fmt.Errorf("%w: no Episode/Section/Turn in %s", ErrMalformed, doc.AudioFilename)
	}
	turn := doc.Episodes[0].Sections[0].Turns[0]
	start, err := parseTime("Turn@startTime", turn.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("Turn@endTime", turn.EndTime)
	if err != nil {
		return nil, err
	}

	marker := r.OverlapMarker
	if marker == "" {
		marker = DefaultOverlapMarker
	}

	t := &Transcript{ID: doc.AudioFilename, Start: start, End: end}
	// last indexes the most recent retained utterance; open reports whether
	// the next marker still owns its end time.
	last, open := -1, false
	for _, p := range turn.Pairs {
		if open {
			t.Utterances[last].End = p.Time
		}
		text := strings.TrimSpace(p.Text)
		if text == "" || (r.SkipOverlaps && strings.HasPrefix(text, marker)) {
			open = false
			continue
		}
		t.Utterances = append(t.Utterances, Utterance{Text: text, Start: p.Time})
		last, open = len(t.Utterances)-1, true
	}
	if last < 0 {
		return nil, fmt.Errorf("%s: %w", doc.AudioFilename, ErrNoUtterances)
	}
	t.Utterances[last].End = end

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.AudioFilename, err)
	}
	return t, nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseTime(what, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrMalformed, what, s, err)
	}
	return v, nil
}
