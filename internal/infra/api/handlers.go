package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skrbl-automation-platform/internal/domain"
	"skrbl-automation-platform/internal/generator"
	"skrbl-automation-platform/internal/infra/logging"
	"skrbl-automation-platform/internal/usecase"
)

type socialGenerateBody struct {
	UserID string `json:"userId"`
	generator.Request
}

func (s *Server) handleSocialGenerate(w http.ResponseWriter, r *http.Request) {
	var body socialGenerateBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, s.log, err)
		return
	}
	if body.UserID == "" {
		respondError(w, s.log, domain.ErrInvalidArgument)
		return
	}

	res, err := s.social.Generate(r.Context(), body.UserID, body.Request)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, res)
}

type jobView struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Status    string      `json:"status"`
	Progress  int         `json:"progress"`
	Output    interface{} `json:"output,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	ctx := logging.WithJobID(r.Context(), jobID)

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	view := jobView{
		ID:        job.ID,
		Type:      job.Type,
		Status:    string(job.Status),
		Progress:  job.Progress,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
	if len(job.Output) > 0 {
		view.Output = job.Output
	}
	respondOK(w, view)
}

func (s *Server) handleLeadSubmit(w http.ResponseWriter, r *http.Request) {
	var body usecase.LeadSubmission
	if err := decodeBody(r, &body); err != nil {
		respondError(w, s.log, err)
		return
	}

	leadID, err := s.leads.Submit(r.Context(), body)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]string{"leadId": leadID})
}

func (s *Server) handleEmailTrigger(w http.ResponseWriter, r *http.Request) {
	var body usecase.TriggerRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, s.log, err)
		return
	}

	res, err := s.sequences.Trigger(r.Context(), body)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, res)
}

func (s *Server) handleEmailEnrollments(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	views, err := s.sequences.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]interface{}{"sequences": views})
}

func (s *Server) handleProcessDrip(w http.ResponseWriter, r *http.Request) {
	processed, err := s.drip.ProcessDue(r.Context(), time.Now())
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]int{"processed": processed})
}
