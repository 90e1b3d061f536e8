package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"skrbl-automation-platform/internal/domain/ports/repository"
	"skrbl-automation-platform/internal/usecase"
)

type onboardingBody struct {
	UserID     string          `json:"userId"`
	AgentID    string          `json:"agentId"`
	Onboarding json.RawMessage `json:"onboarding"`
}

func (s *Server) handleOnboardingSave(w http.ResponseWriter, r *http.Request) {
	var body onboardingBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, s.log, err)
		return
	}
	if err := s.onboarding.Save(r.Context(), body.UserID, body.AgentID, body.Onboarding); err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, nil)
}

func (s *Server) handleOnboardingGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rec, err := s.onboarding.Get(r.Context(), q.Get("userId"), q.Get("agentId"))
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]interface{}{"onboarding": rec.Payload, "updatedAt": rec.UpdatedAt})
}

func (s *Server) handlePercyContact(w http.ResponseWriter, r *http.Request) {
	var body usecase.ContactDispatch
	if err := decodeBody(r, &body); err != nil {
		respondError(w, s.log, err)
		return
	}

	rec, err := s.contact.Dispatch(r.Context(), body)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]string{
		"contactId":  rec.ID,
		"status":     rec.Status,
		"providerId": rec.ProviderID,
	})
}

type sendVerificationBody struct {
	PhoneNumber string `json:"phoneNumber"`
	VIPTier     string `json:"vipTier,omitempty"`
	Message     string `json:"message,omitempty"`
}

func (s *Server) handleSendVerification(w http.ResponseWriter, r *http.Request) {
	var body sendVerificationBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, s.log, err)
		return
	}

	messageID, err := s.verification.SendCode(r.Context(), body.PhoneNumber, body.VIPTier, body.Message)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]string{"messageId": messageID})
}

type verifyCodeBody struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

func (s *Server) handleVerifyCode(w http.ResponseWriter, r *http.Request) {
	var body verifyCodeBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, s.log, err)
		return
	}
	if err := s.verification.VerifyCode(r.Context(), body.PhoneNumber, body.Code); err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]bool{"verified": true})
}

func (s *Server) handleSystemLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.SystemLogFilter{
		Level:  q.Get("level"),
		Source: q.Get("source"),
		Limit:  atoiOrZero(q.Get("limit")),
	}
	logs, err := s.sysLogs.List(r.Context(), f)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]interface{}{"logs": logs})
}

func (s *Server) handleAnalyticsHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.WorkflowLogFilter{
		UserID:   q.Get("userId"),
		AgentID:  q.Get("agentId"),
		Workflow: q.Get("workflow"),
		Limit:    atoiOrZero(q.Get("limit")),
	}
	history, err := s.analytics.History(r.Context(), f)
	if err != nil {
		respondError(w, s.log, err)
		return
	}
	respondOK(w, map[string]interface{}{"history": history})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
