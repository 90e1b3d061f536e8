package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/adapter"
	"skrbl-automation-platform/internal/domain/ports/repository"
	"skrbl-automation-platform/internal/generator"
	"skrbl-automation-platform/internal/infra/metrics"
)

const JobTypeSocialContent = "social_content"

// Compile-time check
var _ SocialContentUseCase = (*socialUC)(nil)

// GenerateResult is what the handler returns immediately: the template draft
// plus the job to poll for the enriched version.
type GenerateResult struct {
	JobID     string                `json:"jobId"`
	ContentID string                `json:"contentId"`
	Platforms []model.PlatformPosts `json:"platforms"`
	Enriching bool                  `json:"enriching"`
}

type SocialContentUseCase interface {
	Generate(ctx context.Context, userID string, req generator.Request) (*GenerateResult, error)
	// EnrichJob is called by the worker after claiming a queued job. It makes
	// one bounded AI call per platform and completes the job; AI failures fall
	// back to the draft and never fail the job.
	EnrichJob(ctx context.Context, job *model.Job) error
}

type socialUC struct {
	jobs      JobUseCase
	content   repository.ContentRepository
	workflow  repository.WorkflowLogRepository
	ai        adapter.TextGenerator
	enrich    bool
	maxTokens int
	log       *zerolog.Logger
}

func NewSocialContentUseCase(
	jobs JobUseCase,
	content repository.ContentRepository,
	workflow repository.WorkflowLogRepository,
	ai adapter.TextGenerator,
	enrich bool,
	maxTokens int,
	logger *zerolog.Logger,
) *socialUC {
	if maxTokens <= 0 {
		maxTokens = 200
	}
	compLog := logger.With().Str("component", "SocialContentUC").Logger()
	return &socialUC{jobs: jobs, content: content, workflow: workflow, ai: ai, enrich: enrich, maxTokens: maxTokens, log: &compLog}
}

func (u *socialUC) Generate(ctx context.Context, userID string, req generator.Request) (*GenerateResult, error) {
	req.Normalize()
	if req.BusinessName == "" || req.Industry == "" || len(req.Platforms) == 0 {
		return nil, domain.ErrInvalidArgument
	}

	job, err := u.jobs.Create(ctx, JobTypeSocialContent, userID)
	if err != nil {
		return nil, err
	}

	draft := generator.Generate(req, time.Now())

	params, _ := json.Marshal(req)
	payload, _ := json.Marshal(draft)
	content := &model.GeneratedContent{
		ID:           uuid.NewString(),
		UserID:       userID,
		JobID:        job.ID,
		BusinessName: req.BusinessName,
		Industry:     req.Industry,
		Params:       params,
		Payload:      payload,
		Status:       "draft",
		CreatedAt:    time.Now(),
	}
	if err := u.content.Save(ctx, repository.NoTX, content); err != nil {
		if ferr := u.jobs.MarkFailed(ctx, job.ID, err.Error()); ferr != nil {
			u.log.Error().Err(ferr).Str("job_id", job.ID).Msg("mark failed after save error")
		}
		return nil, err
	}

	enriching := u.enrich && u.ai != nil
	if !enriching {
		// No enrichment available: drive the job through its checkpoints and
		// complete with the draft.
		if err := u.completeWithDraft(ctx, job.ID, payload); err != nil {
			return nil, err
		}
	}
	// Otherwise the job stays queued; the enrichment worker claims it and the
	// dashboard polls GET /api/jobs/{id}.

	u.recordWorkflow(ctx, userID, "social_content", job.ID)

	return &GenerateResult{
		JobID:     job.ID,
		ContentID: content.ID,
		Platforms: draft,
		Enriching: enriching,
	}, nil
}

func (u *socialUC) completeWithDraft(ctx context.Context, jobID string, payload json.RawMessage) error {
	if err := u.jobs.MarkStarted(ctx, jobID); err != nil {
		return err
	}
	for _, p := range []int{20, 50, 80} {
		if err := u.jobs.UpdateProgress(ctx, jobID, p); err != nil {
			return err
		}
	}
	return u.jobs.MarkComplete(ctx, jobID, payload)
}

func (u *socialUC) EnrichJob(ctx context.Context, job *model.Job) error {
	content, err := u.content.FindByJobID(ctx, repository.NoTX, job.ID)
	if err != nil {
		return u.jobs.MarkFailed(ctx, job.ID, "content not found for job")
	}

	var req generator.Request
	if err := json.Unmarshal(content.Params, &req); err != nil {
		return u.jobs.MarkFailed(ctx, job.ID, "corrupt generation params")
	}
	var platforms []model.PlatformPosts
	if err := json.Unmarshal(content.Payload, &platforms); err != nil {
		return u.jobs.MarkFailed(ctx, job.ID, "corrupt draft payload")
	}

	// Checkpoint progress as platforms finish. Enrichment failures keep the
	// draft text; the job still completes.
	for i := range platforms {
		u.enrichPlatform(ctx, req, &platforms[i])
		progress := 20 + (60*(i+1))/len(platforms)
		if err := u.jobs.UpdateProgress(ctx, job.ID, progress); err != nil {
			u.log.Warn().Err(err).Str("job_id", job.ID).Msg("progress update failed")
		}
	}

	payload, err := json.Marshal(platforms)
	if err != nil {
		return u.jobs.MarkFailed(ctx, job.ID, "marshal enriched payload")
	}
	return u.jobs.MarkComplete(ctx, job.ID, payload)
}

func (u *socialUC) enrichPlatform(ctx context.Context, req generator.Request, pp *model.PlatformPosts) {
	for i := range pp.Posts {
		draft := pp.Posts[i].Content
		if draft == "" {
			draft = pp.Posts[i].Caption
		}
		if draft == "" {
			draft = pp.Posts[i].Description
		}

		callCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		text, err := u.ai.Generate(callCtx, generator.EnrichmentPrompt(req, pp.Platform, draft), u.maxTokens)
		cancel()
		if err != nil || text == "" {
			metrics.IncAIFallback(u.ai.Name())
			u.log.Warn().Err(err).Str("platform", pp.Platform).Msg("enrichment fell back to template")
			continue
		}

		switch {
		case pp.Posts[i].Caption != "":
			pp.Posts[i].Caption = text
		case pp.Posts[i].Description != "":
			pp.Posts[i].Description = text
		default:
			pp.Posts[i].Content = text
		}
		pp.Posts[i].Enriched = true
	}
}

func (u *socialUC) recordWorkflow(ctx context.Context, userID, workflow, jobID string) {
	result, _ := json.Marshal(map[string]string{"jobId": jobID})
	entry := &model.WorkflowLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		AgentID:   "social-bot",
		Workflow:  workflow,
		Status:    "submitted",
		Result:    result,
		CreatedAt: time.Now(),
	}
	if err := u.workflow.Save(ctx, repository.NoTX, entry); err != nil {
		// analytics write must not fail the primary operation
		u.log.Warn().Err(err).Msg("workflow log write failed")
	}
}
