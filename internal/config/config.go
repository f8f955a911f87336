// Package config resolves where mcquiz keeps its files and how it presents
// statistics. Values are layered, highest first: command-line flags, the
// process environment, a .env file in the working directory, the YAML
// config file, then built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName = "mcquiz"

	// ConfigFileName is the name of the YAML file under the config dir.
	ConfigFileName = "config.yml"

	DefaultQuestionsFile = "questions.json"
	StatsFileName        = "user_statistics.json"
	FlaggedFileName      = "flagged_questions.json"
	DBFileName           = "history.db"
	LogFileName          = "mcquiz.log"

	DefaultPageSize          = 5
	DefaultSideRecentWrong   = 3
	DefaultDetailRecentWrong = 5
)

// Environment variables.
const (
	EnvQuestions = "MCQUIZ_QUESTIONS"
	EnvStats     = "MCQUIZ_STATS"
	EnvFlagged   = "MCQUIZ_FLAGGED"
	EnvDB        = "MCQUIZ_DB"
	EnvHome      = "MCQUIZ_HOME"
	EnvPageSize  = "MCQUIZ_PAGE_SIZE"
)

// Config is the resolved configuration.
type Config struct {
	QuestionsPath string `yaml:"questions"`
	StatsPath     string `yaml:"stats"`
	FlaggedPath   string `yaml:"flagged"`
	DBPath        string `yaml:"db"`

	// DataDir holds the statistics, flagged, history and log files unless
	// their paths are set individually.
	DataDir string `yaml:"data_dir"`

	// PageSize is the number of questions per statistics page.
	PageSize int `yaml:"page_size"`

	// SideRecentWrong is how many recent wrong answers the quiz side panel
	// shows; DetailRecentWrong is the same for the statistics detail view.
	SideRecentWrong   int `yaml:"side_recent_wrong"`
	DetailRecentWrong int `yaml:"detail_recent_wrong"`
}

// Overrides are values given on the command line. Empty fields are unset.
type Overrides struct {
	ConfigPath string
	Questions  string
	Stats      string
	Flagged    string
	DB         string
}

// Loader resolves a Config. The zero value reads the real environment.
type Loader struct {
	// EnvFile is the dotenv file to read. Defaults to ".env".
	EnvFile string

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// HomeDir returns the user's home directory. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)
}

// Load resolves the configuration using the real environment.
func Load(o Overrides) (Config, error) {
	return Loader{}.Load(o)
}

// Load resolves the configuration.
func (l Loader) Load(o Overrides) (Config, error) {
	l.setDefaults()

	dotenv, err := readDotenv(l.EnvFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v, ok := l.LookupEnv(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}

	cfg := Config{
		QuestionsPath:     DefaultQuestionsFile,
		PageSize:          DefaultPageSize,
		SideRecentWrong:   DefaultSideRecentWrong,
		DetailRecentWrong: DefaultDetailRecentWrong,
	}

	path, explicit := o.ConfigPath, o.ConfigPath != ""
	if !explicit {
		if path, err = l.defaultConfigPath(lookup); err != nil {
			return Config{}, err
		}
	}
	if err := mergeFile(&cfg, path, explicit); err != nil {
		return Config{}, err
	}

	setIf(&cfg.QuestionsPath, lookup(EnvQuestions))
	setIf(&cfg.StatsPath, lookup(EnvStats))
	setIf(&cfg.FlaggedPath, lookup(EnvFlagged))
	setIf(&cfg.DBPath, lookup(EnvDB))
	setIf(&cfg.DataDir, lookup(EnvHome))
	if v := lookup(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvPageSize, err)
		}
		cfg.PageSize = n
	}

	setIf(&cfg.QuestionsPath, o.Questions)
	setIf(&cfg.StatsPath, o.Stats)
	setIf(&cfg.FlaggedPath, o.Flagged)
	setIf(&cfg.DBPath, o.DB)

	if cfg.DataDir == "" {
		if cfg.DataDir, err = l.defaultDataDir(lookup); err != nil {
			return Config{}, err
		}
	}
	if cfg.StatsPath == "" {
		cfg.StatsPath = filepath.Join(cfg.DataDir, StatsFileName)
	}
	if cfg.FlaggedPath == "" {
		cfg.FlaggedPath = filepath.Join(cfg.DataDir, FlaggedFileName)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, DBFileName)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.QuestionsPath == "" {
		errs = append(errs, errors.New("questions path is empty"))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page_size must be at least 1, got %d", c.PageSize))
	}
	if c.SideRecentWrong < 0 {
		errs = append(errs, fmt.Errorf("side_recent_wrong must not be negative, got %d", c.SideRecentWrong))
	}
	if c.DetailRecentWrong < 0 {
		errs = append(errs, fmt.Errorf("detail_recent_wrong must not be negative, got %d", c.DetailRecentWrong))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LogPath returns the log file location.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, LogFileName)
}

func (l *Loader) setDefaults() {
	if l.EnvFile == "" {
		l.EnvFile = ".env"
	}
	if l.LookupEnv == nil {
		l.LookupEnv = os.LookupEnv
	}
	if l.HomeDir == nil {
		l.HomeDir = os.UserHomeDir
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/mcquiz/config.yml, falling
// back to ~/.config.
func (l Loader) defaultConfigPath(lookup func(string) string) (string, error) {
	dir := lookup("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := l.HomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, ConfigFileName), nil
}

// defaultDataDir resolves the data directory in priority order:
// 1. $XDG_DATA_HOME/mcquiz
// 2. ~/.local/share/mcquiz
func (l Loader) defaultDataDir(lookup func(string) string) (string, error) {
	dataHome := lookup("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := l.HomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// mergeFile overlays the YAML file at path onto cfg. A missing file is an
// error only when it was named explicitly.
func mergeFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse config %s: multiple YAML documents are not supported", path)
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// setIf assigns v to dst when v is non-empty.
func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
