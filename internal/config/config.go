// Package config loads the tablecalc TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/parser"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "tablecalc.toml"

// AppConfig is the application configuration.
type AppConfig struct {
	Workbook  WorkbookConfig  `toml:"workbook"`
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
	Detection DetectionConfig `toml:"detection"`
}

// WorkbookConfig selects the workbook to serve.
type WorkbookConfig struct {
	Path         string `toml:"path"`
	Sheet        string `toml:"sheet"`
	Charset      string `toml:"charset"`
	Separator    string `toml:"separator"`
	DefinedNames bool   `toml:"defined_names"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Port int    `toml:"port"`
	Mode string `toml:"mode"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DetectionConfig tunes table discovery.
type DetectionConfig struct {
	MinNonemptyCells int    `toml:"min_nonempty_cells"`
	DetectTitleRows  bool   `toml:"detect_title_rows"`
	SyntheticPrefix  string `toml:"synthetic_prefix"`
}

// LoadConfigInfo describes where the configuration came from.
type LoadConfigInfo struct {
	// Path is the file that was read, empty when defaults were used.
	Path string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	params := parser.DefaultTableParams()
	return &AppConfig{
		Workbook: WorkbookConfig{
			Charset:      "utf-8",
			DefinedNames: true,
		},
		Server: ServerConfig{
			Port: 9090,
			Mode: "release",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Detection: DetectionConfig{
			MinNonemptyCells: params.MinNonemptyCells,
			DetectTitleRows:  params.DetectTitleRows,
			SyntheticPrefix:  params.SyntheticPrefix,
		},
	}
}

// LoadConfigWithInfo reads path on top of the defaults and applies environment
// overrides. A missing file at DefaultPath is not an error; a missing file
// that was asked for explicitly is.
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("%s: %w", path, err)
		}
		info.Path = path
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, info, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

// LoadConfig is LoadConfigWithInfo without the metadata.
func LoadConfig(path string) (*AppConfig, error) {
	cfg, _, err := LoadConfigWithInfo(path)
	return cfg, err
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("TABLECALC_WORKBOOK"); v != "" {
		cfg.Workbook.Path = v
	}
	if v := os.Getenv("TABLECALC_SHEET"); v != "" {
		cfg.Workbook.Sheet = v
	}
	if v := os.Getenv("TABLECALC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TABLECALC_PORT=%q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("TABLECALC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Marshal renders the configuration as TOML.
func Marshal(cfg *AppConfig) ([]byte, error) {
	return toml.Marshal(cfg)
}

// SeparatorRune decodes the separator setting: "" (auto), "tab", "\t" or a single character.
func (w WorkbookConfig) SeparatorRune() (rune, error) {
	switch s := w.Separator; strings.ToLower(s) {
	case "", "auto":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	default:
		if utf8.RuneCountInString(s) != 1 {
			return 0, fmt.Errorf("separator %q: want a single character", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
}

// Options converts the workbook and detection settings to library options.
func (c *AppConfig) Options() (tablecalc.Options, error) {
	sep, err := c.Workbook.SeparatorRune()
	if err != nil {
		return tablecalc.Options{}, err
	}
	definedNames := c.Workbook.DefinedNames
	opts := tablecalc.DefaultOptions()
	opts.Sheet = c.Workbook.Sheet
	opts.Charset = c.Workbook.Charset
	opts.Separator = sep
	opts.IncludeDefinedNames = &definedNames
	opts.Detection = parser.TableDetectionParams{
		MinNonemptyCells: c.Detection.MinNonemptyCells,
		DetectTitleRows:  c.Detection.DetectTitleRows,
		SyntheticPrefix:  c.Detection.SyntheticPrefix,
	}
	return opts, nil
}
