package config

import (
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gookit/config/v2"
	"github.com/gookit/config/v2/yaml"
)

var defaultConfig = &Config{
	Config: "wsdump.yaml",
}

func NewConfig() *Config {
	return &Config{}
}

func (cfg *Config) ParseFlags(args []string) error {
	app := kingpin.New("wsdump", "Decodes WebSocket frame streams and dumps frame headers")
	app.Version(Version)
	app.DefaultEnvars()

	app.Flag("config", "The config file (Default: ./wsdump.yaml)").Default(defaultConfig.Config).StringVar(&cfg.Config)
	input := app.Flag("input", "Raw frame byte file to decode ('-' for stdin)").String()
	listen := app.Flag("listen", "TCP address to accept frame streams on").String()
	noHandshake := app.Flag("no-handshake", "Skip the RFC 6455 upgrade on accepted connections").Bool()
	output := app.Flag("output", "NDJSON record file (.gz compresses)").String()
	compat := app.Flag("compat-126", "Decode 4-byte extended lengths for code 126").Bool()
	level := app.Flag("log-level", "Log verbosity").String()

	_, err := app.Parse(args)
	if err != nil {
		return err
	}

	if err := cfg.parseConfig(); err != nil {
		return err
	}

	// Flags win over the config file.
	if *input != "" {
		cfg.Data.Input.Path = *input
	}
	if *listen != "" {
		cfg.Data.Listen.Addr = *listen
	}
	if *noHandshake {
		cfg.Data.Listen.Handshake = false
	}
	if *output != "" {
		cfg.Data.Dump.Output = *output
	}
	if *compat {
		cfg.Data.Dump.Compat126 = true
	}
	if *level != "" {
		cfg.Data.Global.LogLevel = *level
	}

	cfg.Data.Global.LogLevel = strings.ToLower(cfg.Data.Global.LogLevel)

	return nil
}

func (cfg *Config) parseConfig() error {
	c := config.New("wsdump").WithOptions(config.ParseDefault).WithDriver(yaml.Driver)

	data := Data{}
	if _, err := os.Stat(cfg.Config); err == nil {
		if err := c.LoadFiles(cfg.Config); err != nil {
			return err
		}
	}
	if err := c.Decode(&data); err != nil {
		return err
	}

	cfg.Data = data

	return nil
}
