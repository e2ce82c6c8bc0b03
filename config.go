package paperpress

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// SiteConfig holds all configuration for a paperpress site. It is loaded
// once per invocation from site.yaml (plus PAPERPRESS_* environment
// overrides) and never mutated afterwards.
type SiteConfig struct {
	Website     string `mapstructure:"website"`     // canonical base URL
	Author      string `mapstructure:"author"`      // default post author
	Description string `mapstructure:"description"` // site description for feeds and meta tags
	Title       string `mapstructure:"title"`       // site title
	OGImage     string `mapstructure:"ogImage"`     // default social preview image path

	LightAndDarkMode bool `mapstructure:"lightAndDarkMode"` // render the theme toggle
	PostPerIndex     int  `mapstructure:"postPerIndex"`     // recent posts on the home page
	PostPerPage      int  `mapstructure:"postPerPage"`      // page size for paginated lists
	ShowArchives     bool `mapstructure:"showArchives"`     // emit /archives/

	// A future-dated post becomes visible once now > pubDatetime - margin.
	ScheduledPostMargin time.Duration `mapstructure:"scheduledPostMargin"`

	Locale   string `mapstructure:"locale"`   // BCP-47 tag, rendered as the html lang attribute
	Timezone string `mapstructure:"timezone"` // IANA name, used when displaying dates

	ContentDir   string `mapstructure:"contentDir"`   // markdown sources (default "content")
	StaticDir    string `mapstructure:"staticDir"`    // files copied verbatim to the output root
	OutputDir    string `mapstructure:"outputDir"`    // build target (default "dist")
	TemplatesDir string `mapstructure:"templatesDir"` // theme override; empty means embedded theme

	Socials []SocialLink `mapstructure:"socials"`
	Lint    LintConfig   `mapstructure:"lint"`
}

// SocialLink is one entry of the social-links list. The list is ordered;
// it is rendered as-is, skipping inactive entries without reordering.
type SocialLink struct {
	Name      string `mapstructure:"name"`
	Href      string `mapstructure:"href"`
	LinkTitle string `mapstructure:"linkTitle"`
	Active    bool   `mapstructure:"active"`
}

// LintConfig configures the check command.
type LintConfig struct {
	MaxDescriptionLength int               `mapstructure:"maxDescriptionLength"`
	ExternalLinks        bool              `mapstructure:"externalLinks"`
	ExternalTimeout      time.Duration     `mapstructure:"externalTimeout"`
	Ignore               []string          `mapstructure:"ignore"`   // path globs, relative to the content dir
	Severity             map[string]string `mapstructure:"severity"` // rule id -> error|warning|off
}

// LoadConfig reads the site configuration. When path is empty it looks for
// site.yaml in the working directory; a missing file is not an error, the
// defaults apply. Environment variables with the PAPERPRESS_ prefix
// override file values (nested keys use underscores, e.g.
// PAPERPRESS_LINT_EXTERNALLINKS).
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("site")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("PAPERPRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

// setDefaults registers every scalar key so AutomaticEnv can resolve it
// during Unmarshal; viper only consults the environment for known keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Blog")
	v.SetDefault("website", "http://localhost:3000")
	v.SetDefault("author", "")
	v.SetDefault("description", "")
	v.SetDefault("ogImage", "")
	v.SetDefault("templatesDir", "")
	v.SetDefault("lightAndDarkMode", true)
	v.SetDefault("postPerIndex", 4)
	v.SetDefault("postPerPage", 4)
	v.SetDefault("showArchives", true)
	v.SetDefault("scheduledPostMargin", "15m")
	v.SetDefault("locale", "en")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("contentDir", "content")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "dist")
	v.SetDefault("lint.maxDescriptionLength", 160)
	v.SetDefault("lint.externalTimeout", "10s")
}

// Validate checks the configuration before anything touches the filesystem.
func (c *SiteConfig) Validate() error {
	u, err := url.Parse(c.Website)
	if err != nil {
		return fmt.Errorf("config: website %q: %w", c.Website, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: website %q must be an absolute http(s) URL", c.Website)
	}
	if !strings.HasSuffix(c.Website, "/") {
		c.Website += "/"
	}
	if c.PostPerPage < 1 {
		return fmt.Errorf("config: postPerPage must be at least 1, got %d", c.PostPerPage)
	}
	if c.PostPerIndex < 1 {
		return fmt.Errorf("config: postPerIndex must be at least 1, got %d", c.PostPerIndex)
	}
	if c.ScheduledPostMargin < 0 {
		return fmt.Errorf("config: scheduledPostMargin must not be negative")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: locale %q: %w", c.Locale, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	for i, s := range c.Socials {
		if s.Name == "" {
			return fmt.Errorf("config: socials[%d]: name is required", i)
		}
		su, err := url.Parse(s.Href)
		if err != nil || su.Scheme == "" {
			return fmt.Errorf("config: socials[%d] (%s): href %q must be an absolute URL", i, s.Name, s.Href)
		}
	}
	if c.Lint.MaxDescriptionLength < 1 {
		return fmt.Errorf("config: lint.maxDescriptionLength must be at least 1")
	}
	for rule, sev := range c.Lint.Severity {
		switch sev {
		case "error", "warning", "off":
		default:
			return fmt.Errorf("config: lint.severity.%s: %q is not one of error, warning, off", rule, sev)
		}
	}
	return nil
}

// Location returns the configured display timezone. Validate guarantees the
// name loads; the UTC fallback only covers zero-value configs in tests.
func (c *SiteConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || loc == nil {
		return time.UTC
	}
	return loc
}

// ActiveSocials returns the social links marked active, in declaration order.
func (c *SiteConfig) ActiveSocials() []SocialLink {
	var out []SocialLink
	for _, s := range c.Socials {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}
