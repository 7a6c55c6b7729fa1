package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/article-prep/pkg/fileutil"
	"github.com/rohmanhakim/article-prep/pkg/hashutil"
	"github.com/rohmanhakim/article-prep/pkg/urlutil"
	"github.com/rohmanhakim/article-prep/pkg/yamlutil"
)

const DefaultBaseDomain = "https://www.thecollector.com/"

type Config struct {
	//===============
	// Normalization
	//===============
	// Links whose href starts with this prefix are internal and keep opening
	// in the same tab. Always canonical and ending with "/".
	baseDomain string

	//===============
	// Images
	//===============
	// Maximum number of image records taken from the manifest. Zero means all.
	imageLimit int

	//===============
	// Remote manifest
	//===============
	// Maximum time of a single manifest request
	timeout time.Duration
	// User agent sent with manifest requests
	userAgent string
	// Controls the random number generator used for jitter
	randomSeed int64
	// Randomized variation added on top of each backoff delay
	jitter time.Duration
	// maximum attempt during retry
	maxAttempt int
	// initial delay for backoff
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration

	//===============
	// Output
	//===============
	// Directory in which to store the resulting files
	outputDir string
	// Hash used to name output files
	hashAlgo hashutil.HashAlgo
	// Whether a Markdown preview is rendered and stored next to the HTML
	previewMarkdown bool
	// Whether the program computes everything without writing files
	dryRun bool
	// Development logging at debug level
	verbose bool
}

type configDTO struct {
	BaseDomain             string  `json:"baseDomain,omitempty" yaml:"baseDomain,omitempty"`
	ImageLimit             *int    `json:"imageLimit,omitempty" yaml:"imageLimit,omitempty"`
	Timeout                string  `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent              string  `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	RandomSeed             int64   `json:"randomSeed,omitempty" yaml:"randomSeed,omitempty"`
	Jitter                 string  `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	MaxAttempt             int     `json:"maxAttempt,omitempty" yaml:"maxAttempt,omitempty"`
	BackoffInitialDuration string  `json:"backoffInitialDuration,omitempty" yaml:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64 `json:"backoffMultiplier,omitempty" yaml:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     string  `json:"backoffMaxDuration,omitempty" yaml:"backoffMaxDuration,omitempty"`
	OutputDir              string  `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	HashAlgo               string  `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
	PreviewMarkdown        bool    `json:"previewMarkdown,omitempty" yaml:"previewMarkdown,omitempty"`
	DryRun                 bool    `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Verbose                bool    `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	baseDomain := dto.BaseDomain
	if baseDomain == "" {
		baseDomain = DefaultBaseDomain
	}
	cfg := WithDefault(baseDomain)

	if dto.ImageLimit != nil {
		cfg.imageLimit = *dto.ImageLimit
	}

	durations := []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"timeout", dto.Timeout, &cfg.timeout},
		{"jitter", dto.Jitter, &cfg.jitter},
		{"backoffInitialDuration", dto.BackoffInitialDuration, &cfg.backoffInitialDuration},
		{"backoffMaxDuration", dto.BackoffMaxDuration, &cfg.backoffMaxDuration},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, d.field, err.Error())
		}
		*d.dst = v
	}

	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	if dto.HashAlgo != "" {
		cfg.hashAlgo = hashutil.HashAlgo(dto.HashAlgo)
	}
	cfg.previewMarkdown = dto.PreviewMarkdown
	cfg.dryRun = dto.DryRun
	cfg.verbose = dto.Verbose

	return cfg.Build()
}

// WithConfigFile loads a .json, .yaml or .yml config file. Unknown keys are
// rejected.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch fileutil.FileExtension(path) {
	case "yaml", "yml":
		err = yamlutil.DecodeStrict(configContent, &cfgDTO)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(configContent))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfgDTO)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedConfigType, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config for baseDomain with default values for
// all other fields. baseDomain is checked by Build.
func WithDefault(baseDomain string) *Config {
	defaultConfig := Config{
		baseDomain:             baseDomain,
		imageLimit:             0,
		timeout:                30 * time.Second,
		userAgent:              "article-prep/1.0",
		randomSeed:             time.Now().UnixNano(),
		jitter:                 250 * time.Millisecond,
		maxAttempt:             3,
		backoffInitialDuration: 500 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     5 * time.Second,
		outputDir:              "output",
		hashAlgo:               hashutil.HashAlgoSHA256,
		previewMarkdown:        false,
		dryRun:                 false,
		verbose:                false,
	}
	return &defaultConfig
}

func (c *Config) WithBaseDomain(baseDomain string) *Config {
	c.baseDomain = baseDomain
	return c
}

func (c *Config) WithImageLimit(limit int) *Config {
	c.imageLimit = limit
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithPreviewMarkdown(preview bool) *Config {
	c.previewMarkdown = preview
	return c
}

func (c *Config) WithDryRun(dryRun bool) *Config {
	c.dryRun = dryRun
	return c
}

func (c *Config) WithVerbose(verbose bool) *Config {
	c.verbose = verbose
	return c
}

func (c *Config) Build() (Config, error) {
	baseDomain, err := urlutil.CanonicalBaseDomain(c.baseDomain)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	c.baseDomain = baseDomain

	algo, err := hashutil.ParseHashAlgo(string(c.hashAlgo))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	c.hashAlgo = algo

	switch {
	case c.imageLimit < 0:
		return Config{}, fmt.Errorf("%w: imageLimit cannot be negative", ErrInvalidConfig)
	case c.maxAttempt < 1:
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1", ErrInvalidConfig)
	case c.outputDir == "":
		return Config{}, fmt.Errorf("%w: outputDir cannot be empty", ErrInvalidConfig)
	case c.backoffMultiplier < 1:
		return Config{}, fmt.Errorf("%w: backoffMultiplier must be at least 1", ErrInvalidConfig)
	}

	return *c, nil
}

func (c Config) BaseDomain() string {
	return c.baseDomain
}

func (c Config) ImageLimit() int {
	return c.imageLimit
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) PreviewMarkdown() bool {
	return c.previewMarkdown
}

func (c Config) DryRun() bool {
	return c.dryRun
}

func (c Config) Verbose() bool {
	return c.verbose
}
