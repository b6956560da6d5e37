package transcript

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/net/html/charset"
)

// MGBReader reads segment-timed MGB transcript documents.
type MGBReader struct{}

type mgbDoc struct {
	XMLName  xml.Name     `xml:"transcript"`
	Speakers []mgbSpeaker `xml:"head>speakers>speaker"`
	Segments []mgbSegment `xml:"body>segments>segment"`
}

type mgbSpeaker struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type mgbSegment struct {
	ID        string       `xml:"id,attr"`
	StartTime string       `xml:"starttime,attr"`
	EndTime   string       `xml:"endtime,attr"`
	Who       string       `xml:"who,attr"`
	Elements  []mgbElement `xml:"element"`
}

type mgbElement struct {
	Text string `xml:",chardata"`
}

func (MGBReader) Read(src io.Reader) (*Transcript, error) {
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charset.NewReaderLabel

	var doc mgbDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("mgb decode: %w: %w", ErrMalformed, err)
	}
	if len(doc.Segments) == 0 {
		return nil, fmt.Errorf("mgb: %w", ErrNoUtterances)
	}

	names := make(map[string]string, len(doc.Speakers))
	for _, s := range doc.Speakers {
		names[s.ID] = s.Name
	}

	t := &Transcript{
		Speakers:   lo.Uniq(lo.Map(doc.Speakers, func(s mgbSpeaker, _ int) string { return s.Name })),
		Utterances: make([]Utterance, 0, len(doc.Segments)),
	}
	for _, seg := range doc.Segments {
		// the format has no document id; the last segment's wins
		t.ID = seg.ID
		start, err := parseTime("segment@starttime", seg.StartTime)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", seg.ID, err)
		}
		end, err := parseTime("segment@endtime", seg.EndTime)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", seg.ID, err)
		}
		name, ok := names[seg.Who]
		if !ok {
			return nil, fmt.Errorf("segment %s: %w %q", seg.ID, ErrUnknownSpeaker, seg.Who)
		}
		if len(seg.Elements) == 0 {
			return nil, fmt.Errorf("%w: segment %s has no element", ErrMalformed, seg.ID)
		}
		words := lo.Map(seg.Elements, func(e mgbElement, _ int) string { return strings.TrimSpace(e.Text) })
		t.Utterances = append(t.Utterances, Utterance{
			Text:    strings.Join(words, " "),
			Start:   start,
			End:     end,
			Speaker: name,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("mgb %s: %w", t.ID, err)
	}
	return t, nil
}
