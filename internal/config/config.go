package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/danodic-dev/mkdocs-backlinks/internal/constants"
)

const ignoredPagesKey = "backlinks.ignored_pages"

type BacklinksConfig struct {
	IgnoredPages    []string `mapstructure:"ignored_pages"     yaml:"ignored_pages"     json:"ignored_pages"`
	IgnoreSelfLinks bool     `mapstructure:"ignore_self_links" yaml:"ignore_self_links" json:"ignore_self_links"`
}

type Config struct {
	SiteName  string          `mapstructure:"site_name" yaml:"site_name" json:"site_name"`
	DocsDir   string          `mapstructure:"docs_dir"  yaml:"docs_dir"  json:"docs_dir"`
	SiteDir   string          `mapstructure:"site_dir"  yaml:"site_dir"  json:"site_dir"`
	ThemeDir  string          `mapstructure:"theme_dir" yaml:"theme_dir" json:"theme_dir"`
	Workers   int             `mapstructure:"workers"   yaml:"workers"   json:"workers"`
	LogLevel  string          `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Backlinks BacklinksConfig `mapstructure:"backlinks" yaml:"backlinks" json:"backlinks"`

	path string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site_name", constants.DefaultSiteName)
	v.SetDefault("docs_dir", constants.DefaultDocsDir)
	v.SetDefault("site_dir", constants.DefaultSiteDir)
	v.SetDefault("theme_dir", "")
	v.SetDefault("workers", constants.DefaultWorkers)
	v.SetDefault("log_level", constants.DefaultLogLevel)
	v.SetDefault(ignoredPagesKey, []string{})
	v.SetDefault("backlinks.ignore_self_links", false)
}

// Load reads the configuration from path, or from backlinks.yaml in the
// working directory when path is empty. A missing default file is not an
// error; every key falls back to its default. Relative directories are
// resolved against the directory holding the config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(constants.ConfigFile)
		v.SetConfigType(constants.ConfigFileType)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	ignored, err := ignoredPages(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Backlinks.IgnoredPages = ignored
	cfg.path = v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.resolveDirs()

	return cfg, nil
}

// Path returns the config file that was read, or "" when defaults are used.
func (cfg *Config) Path() string {
	return cfg.path
}

func (cfg *Config) validate() error {
	if strings.TrimSpace(cfg.DocsDir) == "" {
		return &Error{Key: "docs_dir", msg: "must not be empty"}
	}
	if strings.TrimSpace(cfg.SiteDir) == "" {
		return &Error{Key: "site_dir", msg: "must not be empty"}
	}
	if cfg.Workers < 1 {
		return &Error{Key: "workers", msg: fmt.Sprintf("must be at least 1, got %d", cfg.Workers)}
	}
	if _, err := log.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return &Error{Key: "log_level", msg: fmt.Sprintf("unknown level %q", cfg.LogLevel)}
	}
	return nil
}

func (cfg *Config) resolveDirs() {
	base := "."
	if cfg.path != "" {
		base = filepath.Dir(cfg.path)
	}

	resolve := func(dir string) string {
		if dir == "" || filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}

	cfg.DocsDir = resolve(cfg.DocsDir)
	cfg.SiteDir = resolve(cfg.SiteDir)
	cfg.ThemeDir = resolve(cfg.ThemeDir)
}

// ignoredPages validates the exclusion list before it is decoded, since a
// scalar in the config file would otherwise be coerced into a list.
func ignoredPages(v *viper.Viper) ([]string, error) {
	switch raw := v.Get(ignoredPagesKey).(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, raw...), nil
	case []any:
		out := make([]string, 0, len(raw))
		for i, item := range raw {
			title, ok := item.(string)
			if !ok {
				return nil, &Error{
					Key: ignoredPagesKey,
					msg: fmt.Sprintf("item %d must be a page title, got %T", i, item),
				}
			}
			out = append(out, title)
		}
		return out, nil
	case string:
		// Environment overrides are comma separated.
		if _, ok := os.LookupEnv(envName(ignoredPagesKey)); ok {
			return splitList(raw), nil
		}
		return nil, &Error{Key: ignoredPagesKey, msg: "must be a list of page titles"}
	default:
		return nil, &Error{
			Key: ignoredPagesKey,
			msg: fmt.Sprintf("must be a list of page titles, got %T", raw),
		}
	}
}

func envName(key string) string {
	return constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
