// Package cli implements the command-line wrapper around the core pipeline
// (§6): `extract INPUT [OUTPUT] [-c CONFIG.json]`, exit 0 on success, 1 on
// I/O or config errors. It keeps the teacher's cobra root-command,
// persistent-flag and SetXForTest/ResetFlags test-seam idiom.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hr95savage/semantic-blocks/internal/build"
	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/document"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/hr95savage/semantic-blocks/internal/pipeline"
	"github.com/hr95savage/semantic-blocks/internal/preview"
	"github.com/hr95savage/semantic-blocks/pkg/fileutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	sourceURL  string
	previewOut string
)

var rootCmd = &cobra.Command{
	Use:   "extract INPUT [OUTPUT]",
	Short: "Turn rendered HTML into a semantic block JSON document.",
	Long: `extract parses a single static HTML file and emits a structured,
reading-order sequence of semantic content blocks (headings, paragraphs,
lists, tables, CTAs, accordions, FAQs, tabsets), stripped of chrome,
decoration, and page-wide UI.

It never fetches, renders JavaScript, or follows links: the extractor is a
pure function of the HTML it is given plus a small configuration.`,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runExtract,
	Version: build.FullVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a JSON config file (eyebrow_mode, drop_blog_feeds_on_non_blog_pages, strict_seo_mode, drop_breakpoint_hidden, custom_doc_selectors)")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "url", "", "the page's own URL, used for blog-post classification, canonical fallback, and CTA href resolution")
	rootCmd.PersistentFlags().StringVar(&previewOut, "preview", "", "also render a Markdown preview of the pruned content to this path")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	var outputPath string
	if len(args) == 2 {
		outputPath = args[1]
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	htmlStr, err := readAsUTF8(inputPath)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	sink := metadata.NewRecorder()

	if previewOut == "" {
		doc := pipeline.Extract(htmlStr, sourceURL, cfg, sink)
		return writeDocument(doc, outputPath, cmd.OutOrStdout())
	}

	doc, contentRoot := pipeline.ExtractWithPreview(htmlStr, sourceURL, cfg, sink)
	if err := writeDocument(doc, outputPath, cmd.OutOrStdout()); err != nil {
		return err
	}

	markdown, cerr := preview.NewRule(sink).Convert(contentRoot)
	if cerr != nil {
		return fmt.Errorf("preview error: %w", cerr)
	}
	if err := ensureParentDir(previewOut); err != nil {
		return fmt.Errorf("preview error: %w", err)
	}
	return os.WriteFile(previewOut, []byte(markdown), 0644)
}

// ensureParentDir makes sure OUTPUT's directory exists before a write,
// so a nested --preview or OUTPUT path doesn't fail on a missing directory.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if cerr := fileutil.EnsureDir(dir); cerr != nil {
		return cerr
	}
	return nil
}

func loadConfig() (config.Config, error) {
	if cfgFile == "" {
		return config.WithDefault().Build()
	}
	return config.WithConfigFile(cfgFile)
}

func writeDocument(doc document.Document, outputPath string, stdout io.Writer) error {
	body, err := doc.MarshalPretty()
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	if outputPath == "" {
		_, err := stdout.Write(body)
		return err
	}
	if err := ensureParentDir(outputPath); err != nil {
		return err
	}
	return os.WriteFile(outputPath, body, 0644)
}

func ResetFlags() {
	cfgFile = ""
	sourceURL = ""
	previewOut = ""
}

func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetSourceURLForTest(url string) {
	sourceURL = url
}

func SetPreviewOutForTest(path string) {
	previewOut = path
}
