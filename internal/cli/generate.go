package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-audiobook/internal/audio"
	"github.com/alnah/go-audiobook/internal/config"
	"github.com/alnah/go-audiobook/internal/format"
	"github.com/alnah/go-audiobook/internal/lang"
	"github.com/alnah/go-audiobook/internal/pipeline"
	"github.com/alnah/go-audiobook/internal/tag"
	"github.com/alnah/go-audiobook/internal/text"
	"github.com/alnah/go-audiobook/internal/tts"
)

// supportedFormats lists book input formats the extractor accepts.
var supportedFormats = map[string]bool{
	".txt":  true,
	".md":   true,
	".epub": true,
	".pdf":  true,
}

// supportedFormatsList returns a sorted, comma-separated list for error messages.
// The list is sorted for deterministic output in tests and user-facing messages.
func supportedFormatsList() string {
	formats := make([]string, 0, len(supportedFormats))
	for ext := range supportedFormats {
		formats = append(formats, strings.TrimPrefix(ext, "."))
	}
	slices.Sort(formats)
	return strings.Join(formats, ", ")
}

// clampParallel constrains parallel request count to valid range [1, MaxRecommendedParallel].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > tts.MaxRecommendedParallel {
		return tts.MaxRecommendedParallel
	}
	return n
}

// deriveOutputPath converts a book file path to an MP3 output path.
// Example: "book.epub" -> "book.mp3"
func deriveOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".mp3"
}

// derivePrefix converts a book file path to a per-chapter filename prefix.
// Example: "book.epub" -> "book"
func derivePrefix(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// GenerateCmd creates the generate command.
// The env parameter provides injectable dependencies for testing.
func GenerateCmd(env *Env) *cobra.Command {
	var (
		output        string
		splitChapters bool
		prefix        string
		preview       bool
		language      string
		gender        string
		voice         string
		provider      string
		parallel      int
		chunkBytes    int
		title         string
		author        string
		album         string
		genre         string
		abbreviations string
		voicesFile    string
	)

	cmd := &cobra.Command{
		Use:   "generate <book-file>",
		Short: "Generate a narrated audiobook from a book file",
		Long: `Generate a narrated audiobook from a book file.

The text is split into chapters, paragraphs, and sentences, cleaned for
narration, synthesized in parallel, and assembled into MP3 output with
pauses between sentences and chapters, fades, and loudness normalization.

Synthesis uses Google Cloud Text-to-Speech by default (Application Default
Credentials), or OpenAI with --provider openai (requires OPENAI_API_KEY).

Supported formats: epub, md, pdf, txt`,
		Example: `  audiobook generate book.txt -o book.mp3
  audiobook generate book.epub --split-chapters --prefix mybook
  audiobook generate book.pdf --preview  # First segments only, to check the voice
  audiobook generate book.txt -l en-US --gender MALE
  audiobook generate book.txt --provider openai --voice nova
  audiobook generate book.txt --title "My Book" --author "Jane Doe"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, env, args[0], generateFlags{
				output:        output,
				splitChapters: splitChapters,
				prefix:        prefix,
				preview:       preview,
				language:      language,
				gender:        gender,
				voice:         voice,
				provider:      provider,
				parallel:      parallel,
				chunkBytes:    chunkBytes,
				title:         title,
				author:        author,
				album:         album,
				genre:         genre,
				abbreviations: abbreviations,
				voicesFile:    voicesFile,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output MP3 path (default: <input>.mp3)")
	cmd.Flags().BoolVar(&splitChapters, "split-chapters", false, "Write one MP3 per chapter")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Per-chapter filename prefix (default: input basename)")
	cmd.Flags().BoolVar(&preview, "preview", false, fmt.Sprintf("Synthesize only the first %d segments", pipeline.PreviewSegments))
	cmd.Flags().StringVarP(&language, "language", "l", "", "Narration language (BCP-47, e.g. pt-BR, en-US)")
	cmd.Flags().StringVar(&gender, "gender", "", "Voice gender: FEMALE, MALE, NEUTRAL")
	cmd.Flags().StringVar(&voice, "voice", "", "Provider voice name (default: picked from the catalog)")
	cmd.Flags().StringVar(&provider, "provider", ProviderGoogle, "Synthesis provider: google, openai")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "Max concurrent synthesis requests (1-10)")
	cmd.Flags().IntVar(&chunkBytes, "chunk-bytes", 0, "Max bytes per synthesis chunk")
	cmd.Flags().StringVar(&title, "title", "", "ID3 title tag")
	cmd.Flags().StringVar(&author, "author", "", "ID3 artist tag")
	cmd.Flags().StringVar(&album, "album", "", "ID3 album tag")
	cmd.Flags().StringVar(&genre, "genre", "Audiobook", "ID3 genre tag")
	cmd.Flags().StringVar(&abbreviations, "abbreviations", "", "YAML file overriding the abbreviation table")
	cmd.Flags().StringVar(&voicesFile, "voices-file", "", "YAML file overriding the voice catalog")

	return cmd
}

// generateFlags bundles the generate command's flag values.
type generateFlags struct {
	output        string
	splitChapters bool
	prefix        string
	preview       bool
	language      string
	gender        string
	voice         string
	provider      string
	parallel      int
	chunkBytes    int
	title         string
	author        string
	album         string
	genre         string
	abbreviations string
	voicesFile    string
}

// runGenerate executes the generation pipeline.
// Validation order: file exists -> format -> output -> language -> gender
// -> provider -> parallel -> API key -> voice catalog
func runGenerate(cmd *cobra.Command, env *Env, inputPath string, f generateFlags) error {
	ctx := cmd.Context()

	// === VALIDATION (fail-fast) ===

	// 1. File exists
	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return fmt.Errorf("cannot access input file: %w", err)
	}

	// 2. Format supported
	ext := strings.ToLower(filepath.Ext(inputPath))
	if !supportedFormats[ext] {
		return fmt.Errorf("unsupported format %q (supported: %s): %w",
			ext, supportedFormatsList(), ErrUnsupportedFormat)
	}

	// 3. Load config for output-dir
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	// 4. Environment defaults (language, gender, parallelism, logging)
	procEnv, err := config.LoadEnv(ctx)
	if err != nil {
		return err
	}
	log := procEnv.NewLogger(env.Stderr)

	// 5. Output path or directory
	var outputDir string
	if f.splitChapters {
		outputDir = cfg.OutputDir
		if outputDir == "" {
			outputDir = filepath.Dir(inputPath)
		}
		if err := config.ValidOutputDir(outputDir); err != nil {
			return err
		}
		outputDir = config.ExpandPath(outputDir)
		if f.prefix == "" {
			f.prefix = derivePrefix(inputPath)
		}
	} else {
		defaultOutput := deriveOutputPath(filepath.Base(inputPath))
		f.output = config.ResolveOutputPath(f.output, cfg.OutputDir, defaultOutput)
		if _, err := os.Stat(f.output); err == nil {
			return fmt.Errorf("%w: %s", ErrOutputExists, f.output)
		}
	}

	// 6. Language validation (flag overrides environment default)
	if f.language == "" {
		f.language = procEnv.Language
	}
	locale, err := lang.Canonical(f.language)
	if err != nil {
		return err
	}

	// 7. Gender validation
	if f.gender == "" {
		f.gender = procEnv.Gender
	}
	gender := tts.Gender(strings.ToUpper(f.gender))
	switch gender {
	case tts.GenderFemale, tts.GenderMale, tts.GenderNeutral:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidGender, f.gender)
	}

	// 8. Provider validation
	if f.provider != ProviderGoogle && f.provider != ProviderOpenAI {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, f.provider)
	}

	// 9. Parallel bounds (clamp to 1-10)
	if f.parallel == 0 {
		f.parallel = procEnv.Parallel
	}
	f.parallel = clampParallel(f.parallel)

	// 10. Chunk size default
	if f.chunkBytes == 0 {
		f.chunkBytes = procEnv.MaxChunkBytes
	}

	// 11. API key (OpenAI provider only; Google uses ADC)
	var apiKey string
	if f.provider == ProviderOpenAI {
		apiKey = env.Getenv(EnvOpenAIAPIKey)
		if apiKey == "" {
			return fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, EnvOpenAIAPIKey)
		}
	}

	// 12. Voice selection from the catalog (Google names only; the OpenAI
	// provider maps its fixed voice set itself)
	voiceOpts := tts.DefaultOptions()
	voiceOpts.Language = locale
	voiceOpts.Gender = gender
	voiceOpts.Voice = f.voice
	if f.provider == ProviderGoogle && voiceOpts.Voice == "" {
		catalog := tts.DefaultCatalog()
		if f.voicesFile != "" {
			catalog, err = tts.LoadCatalog(f.voicesFile)
			if err != nil {
				return err
			}
		}
		voiceOpts.Voice, err = catalog.Pick(locale, gender)
		if err != nil {
			return err
		}
	}
	if err := voiceOpts.Validate(); err != nil {
		return err
	}

	// === SETUP ===

	ffmpegPath, err := env.FFmpegResolver.Resolve()
	if err != nil {
		return err
	}
	if _, err := env.FFmpegResolver.CheckVersion(ctx, ffmpegPath); err != nil {
		return err
	}

	var synth tts.Synthesizer
	switch f.provider {
	case ProviderGoogle:
		synth, err = env.SynthesizerFactory.NewGoogle(ctx)
		if err != nil {
			return err
		}
	case ProviderOpenAI:
		synth = env.SynthesizerFactory.NewOpenAI(apiKey)
	}

	packerOpts := []text.PackerOption{}
	if f.abbreviations != "" {
		table, err := text.LoadAbbreviations(f.abbreviations)
		if err != nil {
			return err
		}
		packerOpts = append(packerOpts, text.WithCleaner(text.NewCleaner(table)))
	}

	gen := pipeline.NewGenerator(
		synth,
		audio.NewAssembler(audio.Config{}, log),
		env.EncoderFactory.NewEncoder(ffmpegPath),
		log,
	)
	gen.Packer = text.NewPacker(packerOpts...)
	gen.OnProgress = func(done, total int, seg text.Segment, err error) {
		if err != nil {
			fmt.Fprintf(env.Stderr, "  [%d/%d] failed: %v\n", done, total, err)
			return
		}
		fmt.Fprintf(env.Stderr, "  [%d/%d] %s\n", done, total, seg)
	}

	// === GENERATION ===

	fmt.Fprintln(env.Stderr, "Synthesizing...")

	req := pipeline.Request{
		InputPath:     inputPath,
		OutputPath:    f.output,
		OutputDir:     outputDir,
		Prefix:        f.prefix,
		SplitChapters: f.splitChapters,
		Preview:       f.preview,
		MaxChunkBytes: f.chunkBytes,
		Parallel:      f.parallel,
		Voice:         voiceOpts,
		Meta: tag.Metadata{
			Title:    f.title,
			Artist:   f.author,
			Album:    f.album,
			Genre:    f.genre,
			Language: locale,
		},
	}

	res, err := gen.Generate(ctx, req)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// === SUMMARY ===

	if res.Warnings > 0 {
		fmt.Fprintf(env.Stderr, "Warning: %d segment(s) skipped\n", res.Warnings)
	}
	for _, path := range res.OutputFiles {
		line := path
		if info, statErr := os.Stat(path); statErr == nil {
			line = fmt.Sprintf("%s (%s)", path, format.Size(info.Size()))
		}
		fmt.Fprintf(env.Stderr, "Done: %s\n", line)
	}
	fmt.Fprintf(env.Stderr, "Total audio: %s (%d segments, %d chapters)\n",
		format.Duration(res.Duration), res.Segments, res.Chapters)

	// Surface interruption after reporting the partial output.
	return err
}
