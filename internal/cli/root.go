package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rohmanhakim/wiki-content/internal/build"
	"github.com/rohmanhakim/wiki-content/internal/config"
	"github.com/rohmanhakim/wiki-content/internal/logger"
	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/internal/wiki"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	origin    string
	outputDir string
	format    string
	logLevel  string
	logFormat string
	logFile   string
	sourceURL string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wiki-content",
	Short: "Fetch and clean the content of wiki pages.",
	Long: `wiki-content fetches a Confluence wiki page, follows at most one redirect,
and extracts the page's content block as a cleaned HTML fragment: root-relative
links and images are made absolute and presentation wrappers are removed.

The fragment is printed to standard output, or stored under --output-dir as
HTML or Markdown.`,
	Version:       build.FullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		if failure.IsRecoverable(err) {
			fmt.Fprintln(os.Stderr, "The failure may be temporary; try again later.")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., /home/myuser/wiki-content.yaml)")
	rootCmd.PersistentFlags().StringVar(&origin, "origin", "", "origin prepended to root-relative links (default https://wiki.jenkins-ci.org)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "store the fragment in this directory instead of printing it")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "output format: html or markdown (default html)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, json, text (default console)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this rotated file")

	rootCmd.SetVersionTemplate(build.Describe() + "\n")

	cleanCmd.Flags().StringVar(&sourceURL, "source-url", "", "URL the HTML was downloaded from, used to name stored output")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(cleanCmd)
}

// InitConfigWithError builds the config from the config file, when given,
// and applies non-empty flag values on top of it.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = &cfg
	}

	if origin != "" {
		configBuilder = configBuilder.WithOrigin(origin)
	}
	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}
	if format != "" {
		configBuilder = configBuilder.WithFormat(config.OutputFormat(format))
	}
	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}
	if logFormat != "" {
		configBuilder = configBuilder.WithLogFormat(logFormat)
	}
	if logFile != "" {
		configBuilder = configBuilder.WithLogFile(logFile)
	}

	return configBuilder.Build()
}

// session is everything a command needs to run the pipeline once.
type session struct {
	cfg     config.Config
	log     *zap.Logger
	service wiki.Service
}

func newSession() (session, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return session{}, err
	}

	log, err := logger.NewLogger(cfg.LogParam())
	if err != nil {
		return session{}, fmt.Errorf("error initializing logger: %w", err)
	}
	log = log.With(zap.String("version", build.FullVersion()))

	recorder := metadata.NewRecorder(log)
	return session{
		cfg:     cfg,
		log:     log,
		service: wiki.NewService(cfg, &recorder),
	}, nil
}

func (r session) close() {
	// stderr cannot be synced on some platforms
	_ = r.log.Sync()
}

// emit renders the page and either prints it to out or stores it under the
// configured output directory, printing the stored path.
func (r session) emit(out io.Writer, page wiki.Page) error {
	if page.IsAbsent() {
		return fmt.Errorf("%w: %s stage produced nothing for %q", ErrNoContent, page.AbsentAt(), page.URL())
	}

	rendered, err := r.service.Render(page)
	if err != nil {
		return err
	}
	r.log.Debug("wiki content retrieved", pageFields(page)...)

	if r.cfg.OutputDir() == "" {
		_, writeErr := out.Write(rendered.Content())
		return writeErr
	}

	writeResult, err := r.service.Store(r.cfg.OutputDir(), page, rendered)
	if err != nil {
		return err
	}
	_, printErr := fmt.Fprintln(out, writeResult.Path())
	return printErr
}

// pageFields describes a present page for the debug log: where its content
// was served from and what cleaning changed.
func pageFields(page wiki.Page) []zap.Field {
	fetchResult := page.FetchResult()
	cleanResult := page.CleanResult()

	fields := []zap.Field{
		zap.String(string(metadata.AttrURL), page.URL()),
		zap.String(string(metadata.AttrFinalURL), fetchResult.FinalURL()),
		zap.Bool(string(metadata.AttrRedirected), fetchResult.Redirected()),
	}
	for _, attr := range cleanResult.Summary() {
		fields = append(fields, zap.String(string(attr.Key), attr.Value))
	}
	return fields
}

func ResetFlags() {
	cfgFile = ""
	origin = ""
	outputDir = ""
	format = ""
	logLevel = ""
	logFormat = ""
	logFile = ""
	sourceURL = ""
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetOriginForTest(o string) {
	origin = o
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetFormatForTest(f string) {
	format = f
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

func SetLogFormatForTest(f string) {
	logFormat = f
}

func SetLogFileForTest(path string) {
	logFile = path
}

// ExecuteForTest runs the root command with args, wiring stdin and stdout.
// Flag variables keep the values set by earlier runs; call ResetFlags first.
func ExecuteForTest(args []string, stdin io.Reader, stdout io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
	}()
	return rootCmd.Execute()
}
