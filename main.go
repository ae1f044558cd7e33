package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/westley-wess/portfolio/api"
	"github.com/westley-wess/portfolio/config"
	"github.com/westley-wess/portfolio/database"
	"github.com/westley-wess/portfolio/models"
	"github.com/westley-wess/portfolio/services"
)

func main() {
	c := config.Load(".env")
	setupLogging(c)
	log.Info().Msg("Initializing app...")

	ctx := context.Background()

	// Secrets kept in Parameter Store fill in whatever the environment left unset
	if prefix := config.GetString(c, "SSM_PARAMETER_PATH", ""); prefix != "" {
		ssmClient, err := config.NewSSMClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating SSM client")
		}
		n, err := config.OverlaySSM(ctx, c, ssmClient, prefix)
		if err != nil {
			log.Fatal().Err(err).Str("path", prefix).Msg("Error loading SSM parameters")
		}
		log.Info().Int("parameters", n).Str("path", prefix).Msg("Loaded configuration from SSM")
	}

	log.Info().Str("dbType", config.GetString(c, "DB_TYPE", "sqlite")).Msg("Connecting to database...")
	db, err := database.Open(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, config.GetString(c, "GENERATE_MODELS_PATH", "")); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	cv, err := services.NewCVLinker(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring CV link")
	}

	sms := services.NewSMSSender(c)
	if sms == nil {
		log.Warn().Msg("Twilio is not configured, hire request SMS notifications are disabled")
	}

	svc := api.Services{
		GitHub: services.NewGitHubClient(services.GitHubOptions{
			BaseURL:           config.GetString(c, "GITHUB_API_URL", ""),
			Token:             config.GetString(c, "GITHUB_TOKEN", ""),
			CacheTTL:          config.GetDuration(c, "GITHUB_CACHE_TTL_SECONDS", 10*time.Minute),
			RequestsPerMinute: config.GetInt(c, "GITHUB_RATE_PER_MINUTE", 30),
		}),
		Mailer: services.NewMailer(c),
		SMS:    sms,
		CV:     cv,
	}

	// room for both senders, Start and the signal listener
	errChannel := make(chan error, 2)

	server, err := api.NewServer(c, database.New(db), svc)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
