package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wellform/wellform/internal/models"
	"github.com/wellform/wellform/internal/services"
)

// Submitter is the slice of the submission service the router needs.
type Submitter interface {
	Process(req services.SubmissionRequest) (*services.SubmissionResult, error)
}

type Router struct {
	submissions Submitter
	logger      *slog.Logger
}

func NewRouter(submissions Submitter, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{submissions: submissions, logger: logger}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/submit", rt.handleSubmit) // POST
}

// submitRequest keeps both sections raw so a missing or wrong-typed section
// is reported with its own message before field validation runs.
type submitRequest struct {
	PersonalDetails json.RawMessage `json:"personalDetails"`
	Responses       json.RawMessage `json:"responses"`
	Timestamp       string          `json:"timestamp"`
}

// POST /api/submit
// { personalDetails: {...}, responses: {q1..q16}, timestamp?: string }
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if !isJSONObject(req.PersonalDetails) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Personal details are required"})
		return
	}
	if !isJSONObject(req.Responses) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid responses data"})
		return
	}

	var details models.PersonalDetails
	if err := json.Unmarshal(req.PersonalDetails, &details); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Personal details are required"})
		return
	}
	var responses models.Responses
	if err := json.Unmarshal(req.Responses, &responses); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid responses data"})
		return
	}

	result, err := rt.submissions.Process(services.SubmissionRequest{
		PersonalDetails: &details,
		Responses:       responses,
		Timestamp:       req.Timestamp,
	})
	if err != nil {
		var pdErr *services.PersonalDetailsError
		if errors.As(err, &pdErr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":            "Personal details validation failed",
				"validationErrors": pdErr.Errors,
			})
			return
		}
		var respErr *services.IncompleteResponsesError
		if errors.As(err, &respErr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":            "All questions must be answered",
				"missingQuestions": respErr.Missing,
				"message":          respErr.Message(),
			})
			return
		}
		rt.logger.Error("submission processing failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	rt.logger.Info("submission scored",
		slog.Int("score", result.Result.Score),
		slog.String("grade", result.Result.Grade),
		slog.Bool("saved_to_sheets", result.SavedToSheets))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"score":         result.Result.Score,
		"grade":         result.Result.Grade,
		"description":   result.Result.Description,
		"savedToSheets": result.SavedToSheets,
	})
}

// isJSONObject reports whether raw holds a JSON object. Absent fields and
// JSON null both fail the check.
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
