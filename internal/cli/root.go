package cmd

import (
	"fmt"
	"os"

	"github.com/rohmanhakim/article-prep/internal/config"
	"github.com/rohmanhakim/article-prep/pkg/hashutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile         string
	baseDomain      string
	outputDir       string
	hashAlgo        string
	dryRun          bool
	previewMarkdown bool
	imageLimit      int
	verbose         bool
	inputPath       string
	imagesLocation  string
	headingLevel    int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "article-prep",
	Short: "Normalize WYSIWYG article HTML and place captioned images into it.",
	Long: `article-prep rewrites rich-text article bodies exported from a WYSIWYG
editor into the canonical markup a content-management backend expects, then
merges captioned image markup into the body next to the text each caption
describes.

Images whose caption cannot be found in the article are placed before the
body, so no image is ever dropped.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&baseDomain, "base-domain", "", "links outside this prefix open in a new tab (default "+config.DefaultBaseDomain+")")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "output", "directory receiving the processed article")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "hash used for output file names: sha256 or blake3")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print the result instead of writing it")
	rootCmd.PersistentFlags().BoolVar(&previewMarkdown, "preview", false, "also write a Markdown preview of the result")
	rootCmd.PersistentFlags().IntVar(&imageLimit, "image-limit", 0, "maximum number of image records to read (0 for all)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every normalization pass")

	for _, c := range []*cobra.Command{normalizeCmd, mergeCmd, processCmd, headingsCmd} {
		c.Flags().StringVarP(&inputPath, "input", "i", "", "article HTML file, - for stdin")
		_ = c.MarkFlagRequired("input")
	}
	for _, c := range []*cobra.Command{mergeCmd, processCmd} {
		c.Flags().StringVar(&imagesLocation, "images", "", "image manifest: a .json/.yaml file or an http(s) URL")
		_ = c.MarkFlagRequired("images")
	}
	headingsCmd.Flags().IntVar(&headingLevel, "level", 2, "heading level to list (1-6)")

	rootCmd.AddCommand(normalizeCmd, mergeCmd, processCmd, headingsCmd, versionCmd)
}

// InitConfig reads in config file and flag overrides.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and flag overrides, returning any errors.
// A config file, when given, is used as is.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	domain := config.DefaultBaseDomain
	if baseDomain != "" {
		domain = baseDomain
	}
	configBuilder := config.WithDefault(domain)

	if outputDir != "" && outputDir != "output" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	if previewMarkdown {
		configBuilder = configBuilder.WithPreviewMarkdown(previewMarkdown)
	}

	if imageLimit != 0 {
		configBuilder = configBuilder.WithImageLimit(imageLimit)
	}

	if verbose {
		configBuilder = configBuilder.WithVerbose(verbose)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger returns a development logger when verbose, a production one otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func ResetFlags() {
	cfgFile = ""
	baseDomain = ""
	outputDir = ""
	hashAlgo = ""
	dryRun = false
	previewMarkdown = false
	imageLimit = 0
	verbose = false
	inputPath = ""
	imagesLocation = ""
	headingLevel = 2
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetBaseDomainForTest(domain string) {
	baseDomain = domain
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}

func SetPreviewForTest(preview bool) {
	previewMarkdown = preview
}

func SetImageLimitForTest(limit int) {
	imageLimit = limit
}

func SetVerboseForTest(v bool) {
	verbose = v
}

// RootCommandForTest exposes the root command so tests can run subcommands.
func RootCommandForTest() *cobra.Command {
	return rootCmd
}
