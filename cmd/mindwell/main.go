package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/mindwell-ai/mindwell/ai/assistant"
	"github.com/mindwell-ai/mindwell/ai/llm"
	"github.com/mindwell-ai/mindwell/ai/metrics"
	"github.com/mindwell-ai/mindwell/ai/tools"
	"github.com/mindwell-ai/mindwell/internal/profile"
	"github.com/mindwell-ai/mindwell/internal/version"
	"github.com/mindwell-ai/mindwell/server"
	"github.com/mindwell-ai/mindwell/store"
	"github.com/mindwell-ai/mindwell/store/db"
)

var rootCmd = &cobra.Command{
	Use:   "mindwell",
	Short: `An AI-powered personal wellbeing assistant. Emotional support, tasks, goals, and journal insights in one place.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Systemd services get their environment from the unit file.
		if !isRunningAsSystemdService() {
			_ = godotenv.Load()
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile, err := loadProfile()
		if err != nil {
			slog.Error("invalid configuration", "error", err)
			os.Exit(1)
		}
		setupLogger(instanceProfile)

		asst, storeInstance, exporter, err := buildAssistant(instanceProfile)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer storeInstance.Close()
		defer asst.Close()

		ctx, stop := signal.NotifyContext(context.Background(), terminationSignals...)
		defer stop()

		s := server.NewServer(instanceProfile, asst, exporter)
		printGreetings(instanceProfile)
		if err := s.Start(ctx); err != nil {
			slog.Error("server stopped with error", "error", err)
			os.Exit(1)
		}
	},
}

func loadProfile() (*profile.Profile, error) {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version.GetCurrentVersion(viper.GetString("mode")),
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return nil, err
	}
	return instanceProfile, nil
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// buildAssistant wires the store, LLM service and agent tree from a
// validated profile.
func buildAssistant(p *profile.Profile) (*assistant.Assistant, *store.Store, *metrics.PrometheusExporter, error) {
	if !p.IsAIEnabled() {
		return nil, nil, nil, errors.New("no LLM API key configured (set MINDWELL_LLM_API_KEY)")
	}

	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "create db driver")
	}
	storeInstance := store.New(dbDriver, p)

	llmService, err := llm.NewService(&llm.Config{
		Provider: p.LLMProvider,
		Model:    p.LLMModel,
		APIKey:   p.LLMAPIKey,
		BaseURL:  p.LLMBaseURL,
		Timeout:  p.LLMTimeout,
	})
	if err != nil {
		_ = storeInstance.Close()
		return nil, nil, nil, errors.Wrap(err, "create llm service")
	}
	// Retry transient provider failures, rate-limited to stay inside
	// provider quotas.
	llmService = llm.WithRetry(llmService, llm.DefaultRetryPolicy(), rate.NewLimiter(rate.Limit(2), 4))

	var searchProvider tools.SearchProvider
	if p.SearchEndpoint != "" {
		searchProvider = tools.NewHTTPSearchProvider(p.SearchEndpoint, p.SearchAPIKey)
	}

	exporter := metrics.NewPrometheusExporter(metrics.DefaultConfig())
	asst := assistant.New(llmService, storeInstance, assistant.Config{
		SearchProvider:     searchProvider,
		Exporter:           exporter,
		SessionIdleTimeout: 30 * time.Minute,
	})

	slog.Info("assistant initialized",
		"provider", p.LLMProvider,
		"model", p.LLMModel,
		"driver", p.Driver,
		"search_enabled", searchProvider != nil,
	)
	return asst, storeInstance, exporter, nil
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "memory")
	viper.SetDefault("port", 28080)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 28080, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "memory", "store driver (memory, sqlite)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("mindwell")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func printGreetings(p *profile.Profile) {
	fmt.Printf("MindWell %s started successfully!\n", p.Version)

	if p.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
		if p.DSN != "" {
			fmt.Fprintf(os.Stderr, "Database: %s\n", p.DSN)
		}
	}

	fmt.Printf("Store driver: %s\n", p.Driver)
	fmt.Printf("Mode: %s\n", p.Mode)
	if len(p.Addr) == 0 {
		fmt.Printf("Server running on port %d\n", p.Port)
		fmt.Printf("Chat endpoint: http://localhost:%d/api/v1/chat\n", p.Port)
	} else {
		fmt.Printf("Server running on %s:%d\n", p.Addr, p.Port)
		fmt.Printf("Chat endpoint: http://%s:%d/api/v1/chat\n", p.Addr, p.Port)
	}
}

// isRunningAsSystemdService detects if the process is running under systemd.
func isRunningAsSystemdService() bool {
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("WATCHDOG_USEC") != ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
