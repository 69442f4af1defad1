package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizzify-service/internal/app"
	"quizzify-service/internal/config"
	"quizzify-service/internal/domain"
	"quizzify-service/internal/infra/memory"
	pgstore "quizzify-service/internal/infra/postgres"
	redisstore "quizzify-service/internal/infra/redis"
	transport "quizzify-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuizLoader
	var saver app.QuizSaver
	if pool != nil {
		store := pgstore.NewQuizStore(pool)
		loader, saver = store, store
	} else {
		store := memory.NewQuizStore(sampleQuizzes(cfg))
		loader, saver = store, store
	}

	quizTTL := config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisstore.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var attempts app.AttemptRepository
	if redisClient != nil {
		attempts = redisstore.NewAttemptStore(redisClient, redisTTL)
	} else {
		attempts = memory.NewAttemptStore()
	}

	var board app.LeaderboardStore
	switch {
	case pool != nil:
		board = pgstore.NewLeaderboardStore(pool)
	case redisClient != nil:
		board = redisstore.NewLeaderboardStore(redisClient)
	default:
		board = memory.NewLeaderboardStore()
	}

	service := app.NewQuizService(quizRepo, saver, attempts, board)
	wsHandler := transport.NewWSHandler(service)
	apiHandler := transport.NewAPIHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/quizzes", apiHandler.CreateQuiz)
	mux.HandleFunc("/leaderboard", apiHandler.Leaderboard)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  config.TTLDuration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.TTLDuration(cfg.Server.WriteTimeout, 15*time.Second),
	}

	go func() {
		log.Printf("starting quizzify service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes seeds the in-memory store for demo deployments without a
// database. Disabled via quiz.sample_data: false.
func sampleQuizzes(cfg config.Config) map[string]domain.Quiz {
	if !cfg.Quiz.SampleData {
		return nil
	}
	return map[string]domain.Quiz{
		"TECHAI": {
			ID:               "quiz-tech",
			Title:            "Technology & AI Basics",
			Code:             "TECHAI",
			TimeLimitSeconds: 120,
			CreatedBy:        "system",
			Questions: []domain.Question{
				{
					Text: "Which company developed the Gemini family of models?",
					Type: domain.QuestionMCQ,
					Options: []domain.Option{
						{Text: "Microsoft", IsCorrect: false},
						{Text: "Google", IsCorrect: true},
						{Text: "OpenAI", IsCorrect: false},
					},
				},
				{
					Text: "What does React primarily use to build user interfaces?",
					Type: domain.QuestionMCQ,
					Options: []domain.Option{
						{Text: "CSS", IsCorrect: false},
						{Text: "HTML", IsCorrect: false},
						{Text: "Components", IsCorrect: true},
					},
				},
			},
		},
		"GENKNW": {
			ID:               "quiz-general",
			Title:            "General Knowledge",
			Code:             "GENKNW",
			TimeLimitSeconds: 180,
			CreatedBy:        "system",
			Questions: []domain.Question{
				{
					Text: "What is the chemical symbol for water?",
					Type: domain.QuestionMCQ,
					Options: []domain.Option{
						{Text: "O2", IsCorrect: false},
						{Text: "H2O", IsCorrect: true},
						{Text: "CO2", IsCorrect: false},
					},
				},
				{
					Text:              "What is the largest planet in our solar system?",
					Type:              domain.QuestionOpenEnded,
					CorrectAnswerText: "Jupiter|planet Jupiter",
				},
				{
					Text: "How many continents are there?",
					Type: domain.QuestionMCQ,
					Options: []domain.Option{
						{Text: "Five", IsCorrect: false},
						{Text: "Six", IsCorrect: false},
						{Text: "Seven", IsCorrect: true},
					},
				},
			},
		},
	}
}
