package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hireflux/ats-service/internal/config"
	"github.com/hireflux/ats-service/internal/fitindex"
	"github.com/hireflux/ats-service/internal/logging"
	"github.com/hireflux/ats-service/internal/schemas"
	"github.com/hireflux/ats-service/internal/server"
)

var serveCmd = newServeCmd()

// newServeCmd builds the serve command. Flags live on the command rather than
// in package variables so the config merge can be exercised against a fresh
// flag set.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server that exposes the jobs, candidates, applications,
scoring, and generation endpoints.

Configuration can be loaded from a JSON file using --config. Command-line
flags override config file values; DATABASE_URL and GEMINI_API_KEY fall back
to the environment.`,
		RunE: runServe,
	}

	cmd.Flags().String("config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().Int("port", 8080, "Port to listen on")
	cmd.Flags().String("db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().String("policy", "", "Path to a custom fit policy JSON file")
	cmd.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().Int("score-concurrency", 0, "Workers for batch fit recomputation (0 = default)")
	cmd.Flags().Bool("use-browser", false, "Use headless browser for importing SPA job boards (requires Chrome)")
	cmd.Flags().String("api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var; template generation when unset)")

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServeConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	var policy *fitindex.Policy
	if cfg.PolicyPath != "" {
		policy, err = loadValidatedPolicy(cfg.PolicyPath)
		if err != nil {
			return err
		}
		logger.Info("loaded custom scoring policy", "path", cfg.PolicyPath)
	}

	srv, err := server.New(server.Config{
		Addr:             cfg.Addr,
		DatabaseURL:      cfg.DatabaseURL,
		Policy:           policy,
		ScoreConcurrency: cfg.ScoreConcurrency,
		GeminiAPIKey:     cfg.GeminiAPIKey,
		UseBrowser:       cfg.UseBrowser,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// resolveServeConfig builds the effective configuration: config file first,
// then explicit CLI flags, then environment fallbacks.
func resolveServeConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	var cfg config.Config
	if configPath, _ := flags.GetString("config"); configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	if flags.Changed("port") || cfg.Addr == "" {
		port, _ := flags.GetInt("port")
		cfg.Addr = fmt.Sprintf(":%d", port)
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL, _ = flags.GetString("db-url")
	}
	if flags.Changed("policy") {
		cfg.PolicyPath, _ = flags.GetString("policy")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("score-concurrency") {
		cfg.ScoreConcurrency, _ = flags.GetInt("score-concurrency")
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser, _ = flags.GetBool("use-browser")
	}
	if flags.Changed("api-key") {
		cfg.GeminiAPIKey, _ = flags.GetString("api-key")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadValidatedPolicy schema-checks a policy file when the schema is present,
// then loads it. A missing or broken schema degrades to a warning; the loaded
// policy is still structurally validated by LoadPolicy.
func loadValidatedPolicy(path string) (*fitindex.Policy, error) {
	if schemaPath := schemas.ResolveSchemaPath(schemas.FitPolicySchema); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return nil, fmt.Errorf("policy file does not validate against schema: %w", err)
			}
			_, _ = fmt.Fprintf(os.Stderr, "Warning: could not validate policy against schema: %v\n", err)
		}
	}

	policy, err := fitindex.LoadPolicy(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}
	return policy, nil
}
