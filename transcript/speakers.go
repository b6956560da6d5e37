package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadSpeakers reads a newline-delimited speaker list, one name per retained
// utterance in transcript order.
func LoadSpeakers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := ReadSpeakers(f)
	if err != nil {
		return nil, fmt.Errorf("speakers %s: %w", path, err)
	}
	return out, nil
}

// ReadSpeakers is LoadSpeakers over an open reader. A UTF-8 byte order mark is
// dropped; lines are trimmed but blank lines are kept as empty names.
func ReadSpeakers(r io.Reader) ([]string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, dec))
	var out []string
	for sc.Scan() {
		out = append(out, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
