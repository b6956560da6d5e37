package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Input struct {
	Format        string `yaml:"format"` // trs|mgb
	ID            string `yaml:"id"`     // overrides the recording id when set
	SkipOverlaps  bool   `yaml:"skip_overlaps"`
	OverlapMarker string `yaml:"overlap_marker"`
	Speakers      string `yaml:"speakers"` // speaker list path
}

type Output struct {
	Mode             string `yaml:"mode"` // xml|stm|ctm|tra|json
	SkipNonSpeech    bool   `yaml:"skip_nonspeech"`
	NonSpeechMarker  string `yaml:"nonspeech_marker"`
	CTMAdvanceCursor bool   `yaml:"ctm_advance_cursor"`
	SchemaLocation   string `yaml:"schema_location"`
	AnnotationID     string `yaml:"annotation_id"`
}

type Root struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Input  Input  `yaml:"input"`
	Output Output `yaml:"output"`
}

func Default() *Root {
	var c Root
	c.Log.Level = "info"
	c.Input.Format = "trs"
	c.Input.OverlapMarker = "##"
	c.Output.Mode = "xml"
	c.Output.NonSpeechMarker = "@@@"
	c.Output.SchemaLocation = "transcript_new.xsd"
	c.Output.AnnotationID = "transcript_manual"
	return &c
}

// Load decodes path over the defaults. With an empty path the usual locations
// are tried and a missing file is not an error.
func Load(path string) (*Root, error) {
	if path != "" {
		return loadFile(path)
	}
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	var guess []string = []string{
		filepath.Join("config", env, "config.yaml"),
		"trs2xml.yaml",
	}
	for _, p := range guess {
		c, err := loadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return c, err
	}
	return Default(), nil
}

func loadFile(path string) (*Root, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
