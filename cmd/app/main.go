package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"skrbl-automation-platform/internal/config"
	"skrbl-automation-platform/internal/domain/ports/adapter"
	aiAdapters "skrbl-automation-platform/internal/infra/adapters/ai"
	mailAdapters "skrbl-automation-platform/internal/infra/adapters/mail"
	smsAdapters "skrbl-automation-platform/internal/infra/adapters/sms"
	wfAdapters "skrbl-automation-platform/internal/infra/adapters/workflow"
	"skrbl-automation-platform/internal/infra/api"
	pg "skrbl-automation-platform/internal/infra/db/postgres"
	"skrbl-automation-platform/internal/infra/logging"
	"skrbl-automation-platform/internal/infra/metrics"
	red "skrbl-automation-platform/internal/infra/redis"
	"skrbl-automation-platform/internal/infra/sched"
	"skrbl-automation-platform/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (relaxed validation, console logs)")
	flag.Parse()

	// .env is optional; deployment environments set real variables
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	jobRepo := pg.NewJobRepo(pool, tm)
	contentRepo := pg.NewContentRepo(pool)
	leadRepo := pg.NewLeadRepo(pool)
	sequenceRepo := pg.NewSequenceRepo(pool)
	enrollmentRepo := pg.NewEnrollmentRepo(pool)
	onboardingRepo := pg.NewOnboardingRepo(pool)
	contactRepo := pg.NewContactRepo(pool)
	verificationRepo := pg.NewVerificationRepo(pool)
	systemLogRepo := pg.NewSystemLogRepo(pool)
	workflowLogRepo := pg.NewWorkflowLogRepo(pool)
	roleRepo := pg.NewRoleRepo(pool)

	// ---- Outbound adapters (OpenAI -> Gemini -> none) ----
	var ai adapter.TextGenerator
	switch {
	case cfg.AI.OpenAIKey != "":
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: OpenAI")
	case cfg.AI.GeminiKey != "":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: Gemini")
	default:
		ai = aiAdapters.NewNoopAdapter()
		logger.Warn().Msg("no AI provider configured; content ships as template drafts")
	}
	enrich := ai.Name() != "noop"

	var mailer adapter.Mailer = mailAdapters.NewNoopMailer()
	if cfg.Mail.ResendKey != "" {
		mailer = mailAdapters.NewResendAdapter(cfg.Mail.ResendKey, cfg.Mail.FromEmail)
	}
	var smsSender adapter.SMSSender = smsAdapters.NewNoopSender()
	if cfg.SMS.AccountSID != "" && cfg.SMS.AuthToken != "" {
		smsSender = smsAdapters.NewTwilioAdapter(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.SenderNumber(cfg.Runtime.Dev))
	}
	var webhook adapter.WorkflowTrigger = wfAdapters.NewNoopTrigger()
	if cfg.Workflow.BaseURL != "" {
		webhook = wfAdapters.NewN8NAdapter(cfg.Workflow.BaseURL, cfg.Workflow.APIKey)
	}

	// ---- Use cases ----
	jobUC := usecase.NewJobUseCase(jobRepo)
	socialUC := usecase.NewSocialContentUseCase(jobUC, contentRepo, workflowLogRepo, ai, enrich, cfg.AI.MaxTokens, logger)
	sequenceUC := usecase.NewSequenceUseCase(sequenceRepo, enrollmentRepo, systemLogRepo, webhook, logger)
	dripUC := usecase.NewDripUseCase(sequenceRepo, enrollmentRepo, mailer, logger)
	leadUC := usecase.NewLeadUseCase(leadRepo, sequenceUC, logger)
	onboardingUC := usecase.NewOnboardingUseCase(onboardingRepo)
	contactUC := usecase.NewContactUseCase(contactRepo, smsSender, mailer, logger)
	verificationUC := usecase.NewVerificationUseCase(verificationRepo, smsSender, cfg.SMS.VIPWhitelist, logger)
	analyticsUC := usecase.NewAnalyticsUseCase(workflowLogRepo)
	systemLogUC := usecase.NewSystemLogUseCase(systemLogRepo)

	// ---- HTTP server ----
	srv := api.NewServer(cfg, api.Deps{
		Jobs:         jobUC,
		Social:       socialUC,
		Leads:        leadUC,
		Sequences:    sequenceUC,
		Drip:         dripUC,
		Onboarding:   onboardingUC,
		Contact:      contactUC,
		Verification: verificationUC,
		Analytics:    analyticsUC,
		SysLogs:      systemLogUC,
		Roles:        roleRepo,
		Limiter:      rateLimiter,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("http listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Workers ----
	enrichWorker := sched.NewEnrichmentWorker(cfg.Cron.PollInterval, jobRepo, socialUC, logger)
	go func() { _ = enrichWorker.Run(ctx) }()

	dripWorker := sched.NewDripWorker(cfg.Cron.DripInterval, dripUC, logger)
	go func() { _ = dripWorker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
