package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/qcri/trs2xml/config"
	"github.com/qcri/trs2xml/output"
	"github.com/qcri/trs2xml/transcript"
)

const trsInput = `<?xml version="1.0" encoding="ISO-8859-1"?>
<!DOCTYPE Trans SYSTEM "trans-14.dtd">
<Trans audio_filename="news_001" version="2">
<Episode>
<Section type="report" startTime="0" endTime="10">
<Turn startTime="0" endTime="10">
<Sync time="0.0"/>
hello
<Sync time="3.0"/>
##overlap
<Sync time="5.0"/>
world wide
</Turn>
</Section>
</Episode>
</Trans>
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func run(t *testing.T, c *cfg.Root, src string) (string, *test.Hook, error) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	dst := filepath.Join(t.TempDir(), "out")
	err := NewPipeline(c, log).Run(context.Background(), src, dst)
	b, _ := os.ReadFile(dst)
	return string(b), hook, err
}

func TestRunSTM(t *testing.T) {
	c := cfg.Default()
	c.Input.SkipOverlaps = true
	c.Output.Mode = "stm"

	out, hook, err := run(t, c, writeFile(t, "in.trs", trsInput))
	require.NoError(t, err)
	assert.Equal(t, "news_001 0 UNKNOWN 0.00 3.00 hello\nnews_001 0 UNKNOWN 5.00 10.00 world wide\n", out)

	var loaded *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "transcript loaded" {
			loaded = e
		}
	}
	require.NotNil(t, loaded)
	assert.Equal(t, 2, loaded.Data["utterances"])
	assert.Equal(t, 3, loaded.Data["tokens"])
	assert.Equal(t, "output written", hook.LastEntry().Message)
}

func TestRunDefaultXMLThenMGB(t *testing.T) {
	c := cfg.Default()
	c.Input.ID = "override"
	xmlOut, _, err := run(t, c, writeFile(t, "in.trs", trsInput))
	require.NoError(t, err)
	assert.Contains(t, xmlOut, `<segment id="override_utt_1"`)

	c = cfg.Default()
	c.Input.Format = "mgb"
	c.Output.Mode = "ctm"
	ctm, _, err := run(t, c, writeFile(t, "in.xml", xmlOut))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"override_utt_2 0 0.00 3.00 hello",
		"override_utt_2 0 3.00 2.00 ##overlap",
		"override_utt_2 0 5.00 2.50 world",
		"override_utt_2 0 5.00 2.50 wide",
	}, strings.Split(strings.TrimSpace(ctm), "\n"))
}

func TestRunTRAWithSpeakers(t *testing.T) {
	c := cfg.Default()
	c.Input.SkipOverlaps = true
	c.Input.Speakers = writeFile(t, "spk.txt", "Jane Doe\nJohn\n")
	c.Output.Mode = "tra"

	out, _, err := run(t, c, writeFile(t, "in.trs", trsInput))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "news_001.xml_Jane-Doe_00:00:00,00_00:00:03,00 hello\t"))
	assert.True(t, strings.HasPrefix(lines[1], "news_001.xml_John_00:00:05,00_00:00:10,00 world wide\t"))
}

func TestRunErrors(t *testing.T) {
	src := writeFile(t, "in.trs", trsInput)

	c := cfg.Default()
	c.Output.Mode = "tra"
	c.Input.Speakers = writeFile(t, "spk.txt", "only\n")
	_, _, err := run(t, c, src)
	assert.ErrorIs(t, err, output.ErrSpeakerCount)

	c = cfg.Default()
	c.Input.Format = "mgb"
	_, _, err = run(t, c, src)
	assert.ErrorIs(t, err, transcript.ErrMalformed)

	c = cfg.Default()
	c.Input.Format = "srt"
	_, _, err = run(t, c, src)
	assert.ErrorContains(t, err, "unknown input format")

	c = cfg.Default()
	c.Output.Mode = "srt"
	_, _, err = run(t, c, src)
	assert.ErrorContains(t, err, "unknown output mode")

	_, _, err = run(t, cfg.Default(), filepath.Join(t.TempDir(), "missing.trs"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCancelled(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dst := filepath.Join(t.TempDir(), "out.xml")
	err := NewPipeline(cfg.Default(), log).Run(ctx, writeFile(t, "in.trs", trsInput), dst)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, dst)
}
