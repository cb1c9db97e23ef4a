package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/abhisek/proofpal/internal/grading"
	"github.com/abhisek/proofpal/internal/problems"
	"github.com/abhisek/proofpal/internal/tutor"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody decodes a JSON request body into dst. An empty body is not
// an error; dst keeps its zero value and defaults apply.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

type generateProblemRequest struct {
	ProofType  string `json:"proof_type"`
	Difficulty string `json:"difficulty"`
}

func (h *Handler) GenerateProblem(w http.ResponseWriter, r *http.Request) {
	var req generateProblemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.ProofType == "" {
		req.ProofType = problems.TypeCongruence
	}
	if req.Difficulty == "" {
		req.Difficulty = problems.DifficultyMedium
	}

	resp, err := h.svc.GenerateProblem(r.Context(), req.ProofType, req.Difficulty)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type gradeConditionsRequest struct {
	SelectedConditions []string                  `json:"selected_conditions"`
	ConditionChoices   []grading.ConditionChoice `json:"condition_choices"`
}

func (h *Handler) GradeConditions(w http.ResponseWriter, r *http.Request) {
	var req gradeConditionsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := grading.Grade(req.SelectedConditions, req.ConditionChoices)
	writeJSON(w, http.StatusOK, result)
}

type hintRequest struct {
	TheoremContext string         `json:"theorem_context"`
	Given          problems.Lines `json:"given"`
	ToProve        string         `json:"to_prove"`
	StudentAttempt string         `json:"student_attempt"`
}

func (h *Handler) Hint(w http.ResponseWriter, r *http.Request) {
	var req hintRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.TheoremContext == "" || len(req.Given) == 0 || req.ToProve == "" || req.StudentAttempt == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.svc.Hint(r.Context(), tutor.HintInput{
		TheoremContext: req.TheoremContext,
		Given:          req.Given,
		ToProve:        req.ToProve,
		StudentAttempt: req.StudentAttempt,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeServiceError maps component errors to status codes: an exhausted
// problem store is the caller's problem (400); upstream failures and
// malformed replies are ours (500).
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, problems.ErrNoProblems) {
		writeError(w, http.StatusBadRequest, "問題が見つかりません")
		return
	}

	log.Printf("request failed: %v", err)

	var malformed *tutor.ErrMalformedReply
	if errors.As(err, &malformed) {
		writeError(w, http.StatusInternalServerError, "AIの応答をパースできませんでした")
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}
