package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qcri/trs2xml/transcript"
)

const (
	DefaultSchemaLocation = "transcript_new.xsd"
	DefaultAnnotationID   = "transcript_manual"
	xsiNamespace          = "http://www.w3.org/2001/XMLSchema-instance"
)

// XML re-emits a transcript as an MGB document.
type XML struct {
	SchemaLocation string
	AnnotationID   string
}

type xmlTranscript struct {
	XMLName        xml.Name `xml:"transcript"`
	XSI            string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:noNamespaceSchemaLocation,attr"`
	Head           xmlHead  `xml:"head"`
	Body           xmlBody  `xml:"body"`
}

type xmlHead struct {
	Recording   struct{}       `xml:"recording"`
	Annotations xmlAnnotations `xml:"annotations"`
	Speakers    xmlSpeakers    `xml:"speakers"`
}

type xmlAnnotations struct {
	Annotation []xmlAnnotation `xml:"annotation"`
}

type xmlAnnotation struct {
	ID string `xml:"id,attr"`
}

type xmlSpeakers struct {
	Speaker []xmlSpeaker `xml:"speaker"`
}

type xmlSpeaker struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlBody struct {
	Segments xmlSegments `xml:"segments"`
}

type xmlSegments struct {
	AnnotationID string       `xml:"annotation_id,attr"`
	Segment      []xmlSegment `xml:"segment"`
}

type xmlSegment struct {
	ID        string       `xml:"id,attr"`
	StartTime string       `xml:"starttime,attr"`
	EndTime   string       `xml:"endtime,attr"`
	AWD       string       `xml:"AWD,attr"`
	PMER      string       `xml:"PMER,attr"`
	WMER      string       `xml:"WMER,attr"`
	Who       string       `xml:"who,attr"`
	Elements  []xmlElement `xml:"element"`
}

type xmlElement struct {
	ID   string `xml:"id,attr"`
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

func (x XML) Write(w io.Writer, t *transcript.Transcript) error {
	doc, err := x.build(t)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("xml encode: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func (x XML) build(t *transcript.Transcript) (*xmlTranscript, error) {
	schema := x.SchemaLocation
	if schema == "" {
		schema = DefaultSchemaLocation
	}
	annotation := x.AnnotationID
	if annotation == "" {
		annotation = DefaultAnnotationID
	}

	doc := &xmlTranscript{
		XSI:            xsiNamespace,
		SchemaLocation: schema,
		Head: xmlHead{
			Annotations: xmlAnnotations{Annotation: []xmlAnnotation{{ID: annotation}}},
		},
		Body: xmlBody{Segments: xmlSegments{AnnotationID: annotation}},
	}

	declared := map[string]bool{}
	words := 0
	for i, u := range t.Utterances {
		tokens, awd, err := wordDuration(u)
		if err != nil {
			return nil, fmt.Errorf("xml utterance %d: %w", i, err)
		}
		who := u.Speaker
		if who == "" {
			who = fmt.Sprintf("%s_unknown_%d", t.ID, i)
		}
		if !declared[who] {
			declared[who] = true
			doc.Head.Speakers.Speaker = append(doc.Head.Speakers.Speaker, xmlSpeaker{ID: who, Name: who})
		}
		seg := xmlSegment{
			ID:        fmt.Sprintf("%s_utt_%d", t.ID, i),
			StartTime: formatSeconds(u.Start),
			EndTime:   formatSeconds(u.End),
			AWD:       fmt.Sprintf("%2f", awd),
			PMER:      "0.0",
			WMER:      "0.0",
			Who:       who,
			Elements:  make([]xmlElement, 0, len(tokens)),
		}
		for _, tok := range tokens {
			seg.Elements = append(seg.Elements, xmlElement{
				ID:   fmt.Sprintf("%s_w%d", t.ID, words),
				Type: "word",
				Text: tok,
			})
			words++
		}
		doc.Body.Segments.Segment = append(doc.Body.Segments.Segment, seg)
	}
	return doc, nil
}

// formatSeconds prints the shortest exact form, keeping ".0" on whole values.
func formatSeconds(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
