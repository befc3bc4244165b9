package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type GlobalFlags struct {
	ConfigPath  string
	JSON        bool
	Plain       bool
	Select      string
	ResultsOnly bool
	Timeout     string
	Addr        string
}

type Settings struct {
	OutputMode   string
	SelectFields []string
	ResultsOnly  bool

	Addr        string
	CORSOrigins []string
	LogLevel    string

	Timeout    time.Duration
	YieldsBase string

	StatePath        string
	StateLockPath    string
	WaitlistPath     string
	WaitlistLockPath string
	BlogDir          string
}

type fileConfig struct {
	Output  string `yaml:"output"`
	Timeout string `yaml:"timeout"`
	Server  struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
		LogLevel    string   `yaml:"log_level"`
	} `yaml:"server"`
	Source struct {
		YieldsBase string `yaml:"yields_base"`
	} `yaml:"source"`
	State struct {
		Path     string `yaml:"path"`
		LockPath string `yaml:"lock_path"`
	} `yaml:"state"`
	Waitlist struct {
		Path     string `yaml:"path"`
		LockPath string `yaml:"lock_path"`
	} `yaml:"waitlist"`
	Blog struct {
		Dir string `yaml:"dir"`
	} `yaml:"blog"`
}

// Load resolves settings from defaults, then the yaml config file, then
// APYLIST_* environment variables, then flags. A .env file in the working
// directory is honored first.
func Load(flags GlobalFlags) (Settings, error) {
	_ = godotenv.Load()

	settings, err := defaultSettings()
	if err != nil {
		return Settings{}, err
	}

	cfgPath, err := resolveConfigPath(flags.ConfigPath)
	if err != nil {
		return Settings{}, err
	}
	if err := applyFileConfig(cfgPath, &settings); err != nil {
		return Settings{}, err
	}

	applyEnv(&settings)

	if err := applyFlags(flags, &settings); err != nil {
		return Settings{}, err
	}

	if settings.OutputMode == "" {
		settings.OutputMode = "json"
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 10 * time.Second
	}
	return settings, nil
}

func defaultSettings() (Settings, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		OutputMode:       "json",
		Addr:             ":8080",
		LogLevel:         "info",
		Timeout:          10 * time.Second,
		YieldsBase:       "https://yields.llama.fi",
		StatePath:        filepath.Join(dataDir, "state.db"),
		StateLockPath:    filepath.Join(dataDir, "state.lock"),
		WaitlistPath:     filepath.Join(dataDir, "waitlist.db"),
		WaitlistLockPath: filepath.Join(dataDir, "waitlist.lock"),
		BlogDir:          "content/blog",
	}, nil
}

func resolveConfigPath(input string) (string, error) {
	if strings.TrimSpace(input) != "" {
		return input, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "apylist", "config.yaml"), nil
}

func defaultDataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "apylist"), nil
}

func applyFileConfig(path string, settings *Settings) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	if cfg.Output != "" {
		settings.OutputMode = strings.ToLower(cfg.Output)
	}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		settings.Timeout = d
	}
	if cfg.Server.Addr != "" {
		settings.Addr = cfg.Server.Addr
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		settings.CORSOrigins = cfg.Server.CORSOrigins
	}
	if cfg.Server.LogLevel != "" {
		settings.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	}
	if cfg.Source.YieldsBase != "" {
		settings.YieldsBase = cfg.Source.YieldsBase
	}
	if cfg.State.Path != "" {
		settings.StatePath = cfg.State.Path
	}
	if cfg.State.LockPath != "" {
		settings.StateLockPath = cfg.State.LockPath
	}
	if cfg.Waitlist.Path != "" {
		settings.WaitlistPath = cfg.Waitlist.Path
	}
	if cfg.Waitlist.LockPath != "" {
		settings.WaitlistLockPath = cfg.Waitlist.LockPath
	}
	if cfg.Blog.Dir != "" {
		settings.BlogDir = cfg.Blog.Dir
	}
	return nil
}

func applyEnv(settings *Settings) {
	if v := os.Getenv("APYLIST_OUTPUT"); v != "" {
		settings.OutputMode = strings.ToLower(v)
	}
	if v := os.Getenv("APYLIST_ADDR"); v != "" {
		settings.Addr = v
	}
	if v := os.Getenv("APYLIST_CORS_ORIGINS"); v != "" {
		settings.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("APYLIST_LOG_LEVEL"); v != "" {
		settings.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("APYLIST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			settings.Timeout = d
		}
	}
	if v := os.Getenv("APYLIST_YIELDS_BASE"); v != "" {
		settings.YieldsBase = v
	}
	if v := os.Getenv("APYLIST_STATE_PATH"); v != "" {
		settings.StatePath = v
	}
	if v := os.Getenv("APYLIST_STATE_LOCK_PATH"); v != "" {
		settings.StateLockPath = v
	}
	if v := os.Getenv("APYLIST_WAITLIST_PATH"); v != "" {
		settings.WaitlistPath = v
	}
	if v := os.Getenv("APYLIST_WAITLIST_LOCK_PATH"); v != "" {
		settings.WaitlistLockPath = v
	}
	if v := os.Getenv("APYLIST_BLOG_DIR"); v != "" {
		settings.BlogDir = v
	}
}

func applyFlags(flags GlobalFlags, settings *Settings) error {
	if flags.JSON && flags.Plain {
		return fmt.Errorf("cannot use --json and --plain together")
	}
	if flags.JSON {
		settings.OutputMode = "json"
	}
	if flags.Plain {
		settings.OutputMode = "plain"
	}
	if strings.TrimSpace(flags.Select) != "" {
		settings.SelectFields = splitList(flags.Select)
	}
	settings.ResultsOnly = flags.ResultsOnly

	if flags.Timeout != "" {
		d, err := time.ParseDuration(flags.Timeout)
		if err != nil {
			return fmt.Errorf("parse --timeout: %w", err)
		}
		settings.Timeout = d
	}
	if flags.Addr != "" {
		settings.Addr = flags.Addr
	}

	if settings.OutputMode != "json" && settings.OutputMode != "plain" {
		return fmt.Errorf("output must be json or plain")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
