package cmd

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/qcri/trs2xml/config"
	"github.com/qcri/trs2xml/orchestrator"
)

// outputFlags maps the mutually exclusive mode flags to output modes.
var outputFlags = []struct{ flag, mode string }{
	{"sclite", "stm"},
	{"ctm", "ctm"},
	{"tra", "tra"},
	{"json", "json"},
}

func NewRootCmd() *cobra.Command {
	v := viper.New()
	log := logrus.New()

	c := &cobra.Command{
		Use:           "trs2xml [flags] <trs> <xml>",
		Short:         "Convert Transcriber or MGB transcripts to MGB xml, stm, ctm or tra",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			conf, err := loadConfig(v)
			if err != nil {
				return err
			}
			lvl, err := logrus.ParseLevel(conf.Log.Level)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(lvl)
			log.WithFields(logrus.Fields{"src": args[0], "dst": args[1]}).Debug("starting conversion")
			return orchestrator.NewPipeline(conf, log).Run(cmd.Context(), args[0], args[1])
		},
	}

	f := c.Flags()
	f.Bool("mgb", false, "input is mgb format xml")
	f.String("spk", "", "speaker list: each line corresponding to a segment in xml")
	f.Bool("sclite", false, "output sclite stm file for scoring")
	f.Bool("ctm", false, "output ctm file for testing")
	f.Bool("tra", false, "output tra file")
	f.Bool("json", false, "output the parsed transcript as json")
	f.Bool("skip-overlaps", false, "skip segments starting with ##, these are overlapped speech")
	f.Bool("skip-nonspeech", false, "skip segments starting with @@@, these are non-speech segments (tra only)")
	f.Bool("ctm-advance-cursor", false, "advance the ctm timestamp by one interval per word")
	f.String("id", "", "recording id, overrides the one found in the input")
	f.String("config", "", "yaml config file")
	f.String("log-level", "", "log level: debug|info|warn|error")
	c.MarkFlagsMutuallyExclusive("sclite", "ctm", "tra", "json")

	v.SetEnvPrefix("TRS2XML")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return c
}

// loadConfig reads the yaml file, then applies whatever was set by flag or
// TRS2XML_* environment variable.
func loadConfig(v *viper.Viper) (*cfg.Root, error) {
	conf, err := cfg.Load(v.GetString("config"))
	if err != nil {
		return nil, err
	}
	if v.IsSet("log-level") {
		conf.Log.Level = v.GetString("log-level")
	}
	if v.IsSet("mgb") {
		conf.Input.Format = "trs"
		if v.GetBool("mgb") {
			conf.Input.Format = "mgb"
		}
	}
	if v.IsSet("id") {
		conf.Input.ID = v.GetString("id")
	}
	if v.IsSet("spk") {
		conf.Input.Speakers = v.GetString("spk")
	}
	if v.IsSet("skip-overlaps") {
		conf.Input.SkipOverlaps = v.GetBool("skip-overlaps")
	}
	if v.IsSet("skip-nonspeech") {
		conf.Output.SkipNonSpeech = v.GetBool("skip-nonspeech")
	}
	if v.IsSet("ctm-advance-cursor") {
		conf.Output.CTMAdvanceCursor = v.GetBool("ctm-advance-cursor")
	}
	for _, o := range outputFlags {
		if v.GetBool(o.flag) {
			conf.Output.Mode = o.mode
		}
	}
	return conf, nil
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
