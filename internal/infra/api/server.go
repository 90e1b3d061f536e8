package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/config"
	"skrbl-automation-platform/internal/domain/ports/repository"
	red "skrbl-automation-platform/internal/infra/redis"
	"skrbl-automation-platform/internal/usecase"
)

// Server wires the HTTP surface to the use cases.
type Server struct {
	cfg          *config.Config
	jobs         usecase.JobUseCase
	social       usecase.SocialContentUseCase
	leads        usecase.LeadUseCase
	sequences    usecase.SequenceUseCase
	drip         usecase.DripUseCase
	onboarding   usecase.OnboardingUseCase
	contact      usecase.ContactUseCase
	verification usecase.VerificationUseCase
	analytics    usecase.AnalyticsUseCase
	sysLogs      usecase.SystemLogUseCase
	roles        repository.RoleRepository
	limiter      *red.RateLimiter
	log          *zerolog.Logger
}

type Deps struct {
	Jobs         usecase.JobUseCase
	Social       usecase.SocialContentUseCase
	Leads        usecase.LeadUseCase
	Sequences    usecase.SequenceUseCase
	Drip         usecase.DripUseCase
	Onboarding   usecase.OnboardingUseCase
	Contact      usecase.ContactUseCase
	Verification usecase.VerificationUseCase
	Analytics    usecase.AnalyticsUseCase
	SysLogs      usecase.SystemLogUseCase
	Roles        repository.RoleRepository
	Limiter      *red.RateLimiter
}

func NewServer(cfg *config.Config, d Deps, logger *zerolog.Logger) *Server {
	compLog := logger.With().Str("component", "API").Logger()
	return &Server{
		cfg:          cfg,
		jobs:         d.Jobs,
		social:       d.Social,
		leads:        d.Leads,
		sequences:    d.Sequences,
		drip:         d.Drip,
		onboarding:   d.Onboarding,
		contact:      d.Contact,
		verification: d.Verification,
		analytics:    d.Analytics,
		sysLogs:      d.SysLogs,
		roles:        d.Roles,
		limiter:      d.Limiter,
		log:          &compLog,
	}
}

// Router builds the chi mux with the shared middleware stack.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))
	r.Use(Timeout(30 * time.Second))

	rateLimited := RateLimit(s.limiter, s.cfg.RateLimit.Max, s.cfg.RateLimit.Window, s.log)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/agents/social/generate", s.handleSocialGenerate)
		r.Get("/jobs/{jobID}", s.handleJobStatus)

		r.Post("/leads/submit", s.handleLeadSubmit)

		r.Post("/email/trigger", s.handleEmailTrigger)
		r.Get("/email/trigger", s.handleEmailEnrollments)

		r.With(CronSecret(s.cfg.Cron.Secret, s.log)).
			Post("/cron/process-drip", s.handleProcessDrip)

		r.With(rateLimited).Post("/onboarding", s.handleOnboardingSave)
		r.Get("/onboarding", s.handleOnboardingGet)

		r.Post("/percy/contact", s.handlePercyContact)

		r.Post("/sms/send-verification", s.handleSendVerification)
		r.Post("/sms/verify-code", s.handleVerifyCode)

		r.With(AdminOnly(s.cfg.Security.JWTSecret, s.roles, s.log)).
			Get("/system/logs", s.handleSystemLogs)

		r.With(rateLimited).Get("/analytics/history", s.handleAnalyticsHistory)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
