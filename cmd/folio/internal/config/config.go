// Package config loads the optional folio.yaml project file and resolves it
// into validated settings with defaults applied.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/folio/pkg/figure"
	"github.com/go-drift/folio/pkg/mathtex"
	"github.com/go-drift/folio/pkg/theme"
)

// FileName is the project configuration file looked up in the project root.
const FileName = "folio.yaml"

// Config represents the optional folio.yaml configuration.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Theme  ThemeConfig  `yaml:"theme"`
	Math   MathConfig   `yaml:"math"`
	Figure FigureConfig `yaml:"figure"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// SiteConfig contains document metadata.
type SiteConfig struct {
	Title   string `yaml:"title,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Lang    string `yaml:"lang,omitempty"`
}

// ThemeConfig selects the stylesheet.
type ThemeConfig struct {
	Brightness string `yaml:"brightness,omitempty"`
	Breakpoint int    `yaml:"breakpoint,omitempty"`
}

// MathConfig points at the KaTeX distribution.
type MathConfig struct {
	KaTeXVersion string `yaml:"katex_version,omitempty"`
	CDN          string `yaml:"cdn,omitempty"`
}

// FigureConfig controls figure generation.
type FigureConfig struct {
	Seed   *uint64 `yaml:"seed,omitempty"`
	Paths  int     `yaml:"paths,omitempty"`
	Steps  int     `yaml:"steps,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
}

// ServerConfig contains settings for folio serve.
type ServerConfig struct {
	Addr        string   `yaml:"addr,omitempty"`
	RateLimit   float64  `yaml:"rate_limit,omitempty"`
	Burst       int      `yaml:"burst,omitempty"`
	CacheTTL    string   `yaml:"cache_ttl,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
	RedisAddr   string   `yaml:"redis_addr,omitempty"`
	// TrustedProxies lists the proxy addresses or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers identify the client.
	TrustedProxies []string `yaml:"trusted_proxies,omitempty"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	SiteName   string

	Title   string
	BaseURL string
	Lang    string

	Brightness theme.Brightness
	Breakpoint int

	KaTeX mathtex.KaTeX

	Figure figure.Options

	Server Server

	LogLevel logrus.Level
}

// Server is the resolved server configuration.
type Server struct {
	Addr        string
	RateLimit   float64
	Burst       int
	CacheTTL    time.Duration
	CORSOrigins []string
	RedisAddr   string

	TrustedProxies []netip.Prefix
}

// Defaults applied by Resolve.
const (
	DefaultTitle     = "Itô's Lemma: A Geometric Journey"
	DefaultLang      = "en"
	DefaultAddr      = "127.0.0.1:8080"
	DefaultRateLimit = 10
	DefaultBurst     = 20
	DefaultCacheTTL  = 10 * time.Minute
)

// LoadOptional reads folio.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads folio.yaml (if present) from dir and resolves defaults. A
// go.mod in dir is optional; when present its module path names the site.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	res := &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		SiteName:   defaultSiteName(modulePath, dir),
		Title:      orDefault(cfg.Site.Title, DefaultTitle),
		BaseURL:    strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/"),
		Lang:       orDefault(cfg.Site.Lang, DefaultLang),
	}

	if res.Brightness, err = theme.ParseBrightness(orDefault(cfg.Theme.Brightness, "light")); err != nil {
		return nil, fmt.Errorf("theme.brightness: %w", err)
	}
	res.Breakpoint = cfg.Theme.Breakpoint
	if res.Breakpoint == 0 {
		res.Breakpoint = theme.DefaultBreakpoint
	}
	if res.Breakpoint < 240 || res.Breakpoint > 4096 {
		return nil, fmt.Errorf("theme.breakpoint must be between 240 and 4096 (got %d)", res.Breakpoint)
	}

	if res.KaTeX, err = resolveMath(cfg.Math); err != nil {
		return nil, err
	}
	if res.Figure, err = resolveFigure(cfg.Figure); err != nil {
		return nil, err
	}
	if res.Server, err = resolveServer(cfg.Server); err != nil {
		return nil, err
	}

	if res.LogLevel, err = logrus.ParseLevel(orDefault(cfg.Log.Level, "info")); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	if res.BaseURL != "" {
		if err := validateURL(res.BaseURL); err != nil {
			return nil, fmt.Errorf("site.base_url: %w", err)
		}
	}
	return res, nil
}

// Theme returns the theme data selected by the configuration.
func (r *Resolved) Theme() *theme.ThemeData {
	return theme.ThemeFor(r.Brightness).WithBreakpoint(r.Breakpoint)
}

func resolveMath(m MathConfig) (mathtex.KaTeX, error) {
	version := orDefault(m.KaTeXVersion, mathtex.DefaultKaTeXVersion)
	canonical := version
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) || semver.Canonical(canonical) != canonical {
		return mathtex.KaTeX{}, fmt.Errorf("math.katex_version must be a full semantic version like 0.16.11 (got %q)", version)
	}
	cdn := orDefault(m.CDN, mathtex.DefaultKaTeXCDN)
	if err := validateURL(cdn); err != nil {
		return mathtex.KaTeX{}, fmt.Errorf("math.cdn: %w", err)
	}
	return mathtex.KaTeX{Version: strings.TrimPrefix(canonical, "v"), CDN: cdn}, nil
}

func resolveFigure(f FigureConfig) (figure.Options, error) {
	opts := figure.DefaultOptions()
	if f.Seed != nil {
		opts.Seed = *f.Seed
	}
	checks := []struct {
		name     string
		value    int
		target   *int
		min, max int
	}{
		{"figure.paths", f.Paths, &opts.Paths, 1, 50},
		{"figure.steps", f.Steps, &opts.Points, 2, 100000},
		{"figure.width", f.Width, &opts.Width, 320, 8000},
		{"figure.height", f.Height, &opts.Height, 320, 8000},
	}
	for _, c := range checks {
		if c.value == 0 {
			continue
		}
		if c.value < c.min || c.value > c.max {
			return opts, fmt.Errorf("%s must be between %d and %d (got %d)", c.name, c.min, c.max, c.value)
		}
		*c.target = c.value
	}
	return opts, nil
}

func resolveServer(s ServerConfig) (Server, error) {
	out := Server{
		Addr:        orDefault(s.Addr, DefaultAddr),
		RateLimit:   s.RateLimit,
		Burst:       s.Burst,
		CacheTTL:    DefaultCacheTTL,
		CORSOrigins: s.CORSOrigins,
		RedisAddr:   strings.TrimSpace(s.RedisAddr),
	}
	if out.RateLimit < 0 {
		return out, fmt.Errorf("server.rate_limit cannot be negative (got %v)", out.RateLimit)
	}
	if out.RateLimit == 0 {
		out.RateLimit = DefaultRateLimit
	}
	if out.Burst < 0 {
		return out, fmt.Errorf("server.burst cannot be negative (got %d)", out.Burst)
	}
	if out.Burst == 0 {
		out.Burst = DefaultBurst
	}
	if ttl := strings.TrimSpace(s.CacheTTL); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return out, fmt.Errorf("server.cache_ttl must be a positive duration like 5m (got %q)", ttl)
		}
		out.CacheTTL = d
	}
	if len(out.CORSOrigins) == 0 {
		out.CORSOrigins = []string{"*"}
	}
	for _, entry := range s.TrustedProxies {
		prefix, err := parseProxy(entry)
		if err != nil {
			return out, fmt.Errorf("server.trusted_proxies: %w", err)
		}
		out.TrustedProxies = append(out.TrustedProxies, prefix)
	}
	return out, nil
}

// parseProxy accepts a single address or a CIDR range.
func parseProxy(entry string) (netip.Prefix, error) {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%q is not an address or CIDR range", entry)
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%q is not an address or CIDR range", entry)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// FindProjectRoot walks up from the current directory to the nearest
// directory holding folio.yaml or go.mod. Without either it returns the
// current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultSiteName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "folio"
	}
	return base
}
