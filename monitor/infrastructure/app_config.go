package infrastructure

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

// Defaults used when neither a flag nor the config file sets a value.
const (
	DefaultBufferSize    = 4096
	DefaultFlushInterval = time.Second
	DefaultBaudRate      = 9600
	DefaultReadTimeout   = 3 * time.Second
)

// AppConfig holds all validated configuration parameters for the monitor.
type AppConfig struct {
	Port          monitorDomain.PortPath
	Debug         bool
	LogOnly       bool
	LogPath       monitorDomain.LogPath
	BufferSize    monitorDomain.BufferSize
	FlushInterval monitorDomain.FlushInterval
	BaudRate      monitorDomain.BaudRate
	ReadTimeout   monitorDomain.ReadTimeout
}

// Duration is a time.Duration written as a string such as "1s" in the config file.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// FileConfig holds the raw settings of a TOML config file.
type FileConfig struct {
	Port          string   `toml:"port"`
	Debug         bool     `toml:"debug"`
	LogOnly       bool     `toml:"log_only"`
	LogPath       string   `toml:"log_path"`
	BufferSize    int      `toml:"buffer_size"`
	FlushInterval Duration `toml:"flush_interval"`
	BaudRate      int      `toml:"baud"`
	ReadTimeout   Duration `toml:"read_timeout"`
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		LogPath:       monitorDomain.DefaultLogPath,
		BufferSize:    DefaultBufferSize,
		FlushInterval: Duration{DefaultFlushInterval},
		BaudRate:      DefaultBaudRate,
		ReadTimeout:   Duration{DefaultReadTimeout},
	}
}

// LoadConfigFile reads a TOML file over raw. Keys missing from the file keep
// their current value; unknown keys are rejected.
func LoadConfigFile(path string, raw *FileConfig) error {
	md, err := toml.DecodeFile(path, raw)
	if err != nil {
		return fmt.Errorf("%w: reading config file %s: %w", monitorDomain.ErrValidation, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown keys in config file %s: %v", monitorDomain.ErrValidation, path, undecoded)
	}
	return nil
}

// boolSetter returns a flag handler storing the parsed value, or its
// negation, into dst.
func boolSetter(dst **bool, negate bool) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v = v != negate
		*dst = &v
		return nil
	}
}

// GetFromCommandLineParameters parses command-line flags and returns validated monitor configuration.
// Values come from the built-in defaults, then the optional --config file, then the flags
// that were set explicitly. flag.ErrHelp is returned when help was requested.
func GetFromCommandLineParameters(name string, args []string, output io.Writer) (*AppConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	flags := defaultFileConfig()
	var debug, logOnly *bool
	configPath := fs.String("config", "", "Path to a TOML file with default settings")
	fs.StringVar(&flags.Port, "port", "", "Serial port of the sensor (default: probe every serial port)")
	fs.BoolFunc("debug", "Print every raw frame instead of a summary; no telemetry is written", boolSetter(&debug, false))
	fs.BoolFunc("no-debug", "Disable --debug", boolSetter(&debug, true))
	fs.BoolFunc("log-only", "Write telemetry without printing summaries", boolSetter(&logOnly, false))
	fs.BoolFunc("no-log-only", "Disable --log-only", boolSetter(&logOnly, true))
	fs.StringVar(&flags.LogPath, "log-path", flags.LogPath, "Path to the telemetry file")
	fs.IntVar(&flags.BufferSize, "buffer-size", flags.BufferSize, "Buffer size in bytes for the telemetry file")
	fs.DurationVar(&flags.FlushInterval.Duration, "flush-interval", flags.FlushInterval.Duration, "How often the telemetry buffer is flushed")
	fs.IntVar(&flags.BaudRate, "baud", flags.BaudRate, "Serial baud rate")
	fs.DurationVar(&flags.ReadTimeout.Duration, "read-timeout", flags.ReadTimeout.Duration, "How long to wait for a frame")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %v", monitorDomain.ErrValidation, fs.Args())
	}

	raw := defaultFileConfig()
	if *configPath != "" {
		if err := LoadConfigFile(*configPath, &raw); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			raw.Port = flags.Port
		case "debug", "no-debug":
			raw.Debug = *debug
		case "log-only", "no-log-only":
			raw.LogOnly = *logOnly
		case "log-path":
			raw.LogPath = flags.LogPath
		case "buffer-size":
			raw.BufferSize = flags.BufferSize
		case "flush-interval":
			raw.FlushInterval = flags.FlushInterval
		case "baud":
			raw.BaudRate = flags.BaudRate
		case "read-timeout":
			raw.ReadTimeout = flags.ReadTimeout
		}
	})

	return newAppConfig(raw)
}

func newAppConfig(raw FileConfig) (*AppConfig, error) {
	port, err := monitorDomain.NewPortPath(raw.Port)
	if err != nil {
		return nil, err
	}

	logPath, err := monitorDomain.NewLogPath(raw.LogPath)
	if err != nil {
		return nil, err
	}

	bufferSize, err := monitorDomain.NewBufferSize(raw.BufferSize)
	if err != nil {
		return nil, err
	}

	flushInterval, err := monitorDomain.NewFlushInterval(raw.FlushInterval.Duration)
	if err != nil {
		return nil, err
	}

	baudRate, err := monitorDomain.NewBaudRate(raw.BaudRate)
	if err != nil {
		return nil, err
	}

	readTimeout, err := monitorDomain.NewReadTimeout(raw.ReadTimeout.Duration)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:          port,
		Debug:         raw.Debug,
		LogOnly:       raw.LogOnly,
		LogPath:       logPath,
		BufferSize:    bufferSize,
		FlushInterval: flushInterval,
		BaudRate:      baudRate,
		ReadTimeout:   readTimeout,
	}

	return config, nil
}
