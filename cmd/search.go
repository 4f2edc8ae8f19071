package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hireloop/talent-scout/internal/ai"
	"github.com/hireloop/talent-scout/internal/ai/gemini"
	"github.com/hireloop/talent-scout/internal/candidate"
	"github.com/hireloop/talent-scout/internal/logger"
	"github.com/hireloop/talent-scout/internal/search"
	"github.com/hireloop/talent-scout/internal/secrets"
	"github.com/hireloop/talent-scout/internal/store"
)

const (
	PromptNextPage         = "Next page"
	PromptPreviousPage     = "Previous page"
	PromptReportByLocation = "Report by location"
	PromptDumpToFile       = "Dump matches to file"
	PromptExit             = "Exit"

	defaultPageSize = 10
)

var errExit = errors.New("exit requested")

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the candidate pool with a structured filter or a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		runSearch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("jd-file", "", "path to a job description; the filter is extracted from it")
	searchCmd.Flags().String("job-title", "", "job title to match (fuzzy)")
	searchCmd.Flags().String("education", "", "comma-separated education keywords")
	searchCmd.Flags().String("location", "", "location to match (fuzzy)")
	searchCmd.Flags().StringSlice("skills", nil, "required skills")
	searchCmd.Flags().Float64("min-experience", 0, "minimum years of experience")
	searchCmd.Flags().Float64("max-experience", 0, "maximum years of experience")
	searchCmd.Flags().Int("page-size", defaultPageSize, "results per page")
	searchCmd.Flags().Bool("no-prompt", false, "print all matches as json and exit")
}

// runSearch is the main command for the cli.
func runSearch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talent-scout", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	source, cleanup, err := prepareSource(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing candidate source", zap.Error(err))
	}
	defer cleanup()

	pool, err := source.FetchAll(ctx)
	if err != nil {
		logger.Fatal("fetching candidate snapshot", zap.Error(err))
	}

	logger.Info("loaded candidate pool", zap.Int("count", pool.Len()))

	if pool.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "candidate pool is empty"))
		return
	}

	filter, err := buildFilter(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("building the search filter",
			zap.Error(err),
			zap.String("hint", "pass --job-title/--skills/... to filter manually"),
		)
	}

	matched, err := search.NewMatcher(logger).Match(pool, filter)
	if err != nil {
		var invalid *search.InvalidFilterError
		if errors.As(err, &invalid) {
			logger.Fatal("filter rejected", zap.Error(invalid))
		}
		logger.Fatal("matching failed", zap.Error(err))
	}

	if matched.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates matched the filter"))
		return
	}

	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if noPrompt, _ := cmd.Flags().GetBool("no-prompt"); noPrompt {
		pretty, _ := json.MarshalIndent(matched, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	if err := pageResults(matched, pageSize, logger); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func pageResults(matched *candidate.Candidates, pageSize int, logger *zap.Logger) error {
	page := 1
	total := search.TotalPages(matched.Len(), pageSize)

	for {
		items := search.Paginate(matched.Items, page, pageSize)
		fmt.Printf("page %d/%d (%d candidates)\n", page, total, matched.Len())
		for i, c := range items {
			line := fmt.Sprintf("%d. %s / %s / %s", (page-1)*pageSize+i+1, c.Name, c.JobTitle, c.Location)
			if c.Experience != nil {
				line += fmt.Sprintf(" / %gy", *c.Experience)
			}
			fmt.Println(line)
		}

		prompt := promptui.Select{
			Label: "Action",
			Items: []string{PromptNextPage, PromptPreviousPage, PromptReportByLocation, PromptDumpToFile, PromptExit},
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(action, matched, &page, total, logger); err != nil {
			return err
		}
	}
}

func handleAction(action string, matched *candidate.Candidates, page *int, total int, logger *zap.Logger) error {
	switch action {
	case PromptNextPage:
		if *page < total {
			*page++
		}
		return nil
	case PromptPreviousPage:
		if *page > 1 {
			*page--
		}
		return nil
	case PromptReportByLocation:
		pretty, _ := json.MarshalIndent(matched.ReportByLocation(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", matched.Len()))
		return nil
	case PromptDumpToFile:
		filename, err := matched.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump matches to file: %w", err)
		}
		logger.Info("dumping matches to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// buildFilter derives the filter from a job description when --jd-file is
// set, then lets manual flags and config override individual fields. A failed
// extraction is fatal rather than silently degrading to an unconstrained
// search.
func buildFilter(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (*search.Filter, error) {
	filter := search.NewFilter()

	if jdFile, _ := cmd.Flags().GetString("jd-file"); jdFile != "" {
		extractor, err := newExtractor(ctx, config, logger)
		if err != nil {
			return nil, err
		}

		jd, err := os.ReadFile(jdFile)
		if err != nil {
			return nil, fmt.Errorf("reading job description: %w", err)
		}

		extracted, err := extractor.Extract(ctx, string(jd))
		if err != nil {
			var normErr *ai.NormalizationError
			if errors.As(err, &normErr) {
				return nil, normErr
			}
			return nil, err
		}

		logger.Info("extracted filter from job description",
			zap.String("job_title", extracted.JobTitle),
			zap.Strings("skills", extracted.Skills),
		)
		filter = extracted
	}

	applyConfigOverrides(filter, config.Search)
	applyFlagOverrides(filter, cmd)

	return filter, nil
}

func applyConfigOverrides(filter *search.Filter, cfg *SearchConfig) {
	if cfg == nil {
		return
	}
	if cfg.JobTitle != "" {
		filter.JobTitle = cfg.JobTitle
	}
	if cfg.Education != "" {
		filter.Education = cfg.Education
	}
	if cfg.Location != "" {
		filter.Location = cfg.Location
	}
	if len(cfg.Skills) > 0 {
		filter.Skills = cfg.Skills
	}
	if cfg.MinExperience != nil {
		filter.Experience[0] = *cfg.MinExperience
	}
	if cfg.MaxExperience != nil {
		filter.Experience[1] = *cfg.MaxExperience
	}
}

func applyFlagOverrides(filter *search.Filter, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("job-title") {
		filter.JobTitle, _ = flags.GetString("job-title")
	}
	if flags.Changed("education") {
		filter.Education, _ = flags.GetString("education")
	}
	if flags.Changed("location") {
		filter.Location, _ = flags.GetString("location")
	}
	if flags.Changed("skills") {
		filter.Skills, _ = flags.GetStringSlice("skills")
	}
	if flags.Changed("min-experience") {
		filter.Experience[0], _ = flags.GetFloat64("min-experience")
	}
	if flags.Changed("max-experience") {
		filter.Experience[1], _ = flags.GetFloat64("max-experience")
	}
}

func prepareSource(ctx context.Context, config *Config, logger *zap.Logger) (store.Source, func(), error) {
	noop := func() {}

	if config.Source == nil {
		return nil, noop, errors.New("source configuration is required")
	}

	if config.Source.Mongo != nil {
		uri, err := resolveMongoURI(config.Source.Mongo)
		if err != nil {
			return nil, noop, err
		}

		src, err := store.NewMongoSource(ctx, logger, uri, config.Source.Mongo.Database, config.Source.Mongo.Collection)
		if err != nil {
			return nil, noop, err
		}

		return src, func() {
			if err := src.Close(ctx); err != nil {
				logger.Warn("closing mongodb connection", zap.Error(err))
			}
		}, nil
	}

	if strings.TrimSpace(config.Source.File) == "" {
		return nil, noop, errors.New("either source.mongo or source.file must be configured")
	}

	return store.NewFileSource(config.Source.File), noop, nil
}

func resolveMongoURI(cfg *MongoConfig) (string, error) {
	uriFile := strings.TrimSpace(cfg.URIFile)
	if uriFile == "" {
		uriFile = strings.TrimSpace(viper.GetString("mongo-uri-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "mongodb uri",
		File: uriFile,
		Env:  "MONGO_URI",
	})
}

func newExtractor(ctx context.Context, config *Config, logger *zap.Logger) (ai.Extractor, error) {
	if config.AI == nil || config.AI.Gemini == nil {
		return nil, errors.New("ai.gemini configuration is required to extract filters from a job description")
	}

	keyFile := strings.TrimSpace(config.AI.Gemini.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("gemini-api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model)
	if err != nil {
		return nil, err
	}

	extractorLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewExtractor(generator, extractorLogger, config.AI.Gemini.MaxLogLength), nil
}
