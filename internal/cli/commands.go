package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rohmanhakim/article-prep/internal/build"
	"github.com/rohmanhakim/article-prep/internal/config"
	"github.com/rohmanhakim/article-prep/internal/imagesource"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/internal/normalize"
	"github.com/rohmanhakim/article-prep/internal/pipeline"
	"github.com/rohmanhakim/article-prep/internal/storage"
	"github.com/rohmanhakim/article-prep/pkg/hashutil"
	"github.com/rohmanhakim/article-prep/pkg/retry"
	"github.com/rohmanhakim/article-prep/pkg/timeutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite an article into canonical markup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.ModeNormalize)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Place captioned images into an already normalized article",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.ModeMerge)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Normalize an article and place captioned images into it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.ModeProcess)
	},
}

var headingsCmd = &cobra.Command{
	Use:   "headings",
	Short: "List the headings of an article",
	RunE: func(cmd *cobra.Command, args []string) error {
		document, err := readInput(cmd, inputPath)
		if err != nil {
			return err
		}
		headings, err := normalize.ExtractHeadings(document, headingLevel)
		if err != nil {
			return err
		}
		printHeadings(cmd.OutOrStdout(), headings)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.Banner("article-prep"))
	},
}

func runPipeline(cmd *cobra.Command, mode pipeline.Mode) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	document, err := readInput(cmd, inputPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose())
	if err != nil {
		return fmt.Errorf("error building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	recorder := metadata.NewRecorder(runID(mode, document), logger)

	// The article outline is shown before anything is rewritten.
	if mode == pipeline.ModeProcess {
		if headings, err := normalize.ExtractHeadings(document, 2); err == nil {
			printHeadings(cmd.OutOrStdout(), headings)
		}
	}

	var source imagesource.Source
	if imagesLocation != "" {
		source = imagesource.Open(&recorder, imagesLocation, remoteOptions(cfg))
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	sink := storage.NewLocalSink(&recorder, cfg.DryRun())
	p := pipeline.NewPipeline(&recorder, &recorder, &sink)
	execution, err := p.Execute(ctx, cfg, mode, document, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if execution.ImagesIncomplete {
		fmt.Fprintf(cmd.ErrOrStderr(), "image list incomplete: merged %d image(s)\n", execution.TotalImages)
	}
	if mode != pipeline.ModeNormalize {
		fmt.Fprintf(out, "images: %d matched, %d prepended\n", execution.Matched, execution.Prepended)
		logger.Debug("match patterns", zap.Strings("patterns", execution.Patterns))
	}

	if cfg.PreviewMarkdown() {
		fmt.Fprintf(out, "links: %d navigation, %d external, %d images\n",
			execution.Links.Navigation, execution.Links.External, execution.Links.Images)
	}

	if cfg.DryRun() {
		fmt.Fprintln(out, execution.Document)
		return nil
	}
	fmt.Fprintf(out, "written: %s\n", execution.WriteResult.HTMLPath())
	for _, path := range []string{
		execution.WriteResult.MarkdownPath(),
		execution.WriteResult.PreviewHTMLPath(),
	} {
		if path != "" {
			fmt.Fprintf(out, "written: %s\n", path)
		}
	}
	return nil
}

func remoteOptions(cfg config.Config) imagesource.RemoteOptions {
	return imagesource.RemoteOptions{
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		UserAgent:  cfg.UserAgent(),
		RetryParam: retry.NewRetryParam(
			cfg.Jitter(),
			cfg.RandomSeed(),
			cfg.MaxAttempt(),
			timeutil.NewBackoffParam(
				cfg.BackoffInitialDuration(),
				cfg.BackoffMultiplier(),
				cfg.BackoffMaxDuration(),
			),
		),
	}
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return string(data), nil
}

func printHeadings(w io.Writer, headings []normalize.Heading) {
	for i, heading := range headings {
		fmt.Fprintf(w, "%d. %s\n", i+1, heading.Text)
	}
}

// runID names a run after its mode, start time and input.
func runID(mode pipeline.Mode, document string) string {
	short, err := hashutil.ShortHash([]byte(document), hashutil.HashAlgoBLAKE3, 8)
	if err != nil {
		short = "unknown"
	}
	return fmt.Sprintf("%s-%d-%s", mode, time.Now().Unix(), short)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
