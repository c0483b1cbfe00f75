package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wellform/wellform/internal/models"
)

// SheetWriter forwards a finished submission to durable storage. It is a
// best-effort sink: failures are reported but never block a submission.
type SheetWriter interface {
	Append(p *models.SubmissionPayload) error
}

// PersonalDetailsError carries every field-level validation failure found in
// the personal section of a submission.
type PersonalDetailsError struct {
	Errors []string
}

func (e *PersonalDetailsError) Error() string {
	return "personal details validation failed: " + strings.Join(e.Errors, ", ")
}

// IncompleteResponsesError lists the questions that are unanswered or carry
// an illegal value, in ascending numeric order.
type IncompleteResponsesError struct {
	Missing []string
}

func (e *IncompleteResponsesError) Error() string {
	return "unanswered questions: " + strings.Join(e.Missing, ", ")
}

// Message renders the prompt shown to the respondent, with singular or
// plural wording as appropriate.
func (e *IncompleteResponsesError) Message() string {
	noun := "question"
	if len(e.Missing) > 1 {
		noun = "questions"
	}
	return fmt.Sprintf("Please answer %s: %s", noun, strings.Join(e.Missing, ", "))
}

// SubmissionRequest transports the decoded handler input into the service.
type SubmissionRequest struct {
	PersonalDetails *models.PersonalDetails
	Responses       models.Responses
	Timestamp       string
}

// SubmissionResult collects what the HTTP layer needs to answer the caller.
type SubmissionResult struct {
	Result        models.ScoreResult
	SavedToSheets bool
}

// SubmissionService runs the validate, score, persist workflow for one
// submission. There is no shared state between submissions.
type SubmissionService struct {
	sheets      SheetWriter
	logger      *slog.Logger
	now         func() time.Time
	idGenerator func() string
}

// NewSubmissionService constructs a service bound to the given sheet writer.
func NewSubmissionService(sheets SheetWriter, logger *slog.Logger) *SubmissionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionService{
		sheets:      sheets,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: defaultSubmissionID,
	}
}

func defaultSubmissionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Process validates, scores, and forwards one submission. Validation
// failures come back as *PersonalDetailsError or *IncompleteResponsesError.
// Sheet failures are absorbed: they are logged and reflected only in
// SavedToSheets, and the write is never retried.
func (s *SubmissionService) Process(req SubmissionRequest) (*SubmissionResult, error) {
	if errs := ValidatePersonalDetails(req.PersonalDetails); len(errs) > 0 {
		return nil, &PersonalDetailsError{Errors: errs}
	}
	if missing := ValidateResponses(req.Responses); len(missing) > 0 {
		return nil, &IncompleteResponsesError{Missing: missing}
	}

	result := Score(req.Responses)

	timestamp := strings.TrimSpace(req.Timestamp)
	if timestamp == "" {
		timestamp = s.now().Format(time.RFC3339)
	}
	payload := &models.SubmissionPayload{
		SubmissionID:    s.idGenerator(),
		Timestamp:       timestamp,
		PersonalDetails: NormalizePersonalDetails(req.PersonalDetails),
		Responses:       req.Responses,
		Result:          result,
	}

	saved := false
	if s.sheets != nil {
		if err := s.sheets.Append(payload); err != nil {
			s.logger.Warn("sheet append failed",
				slog.String("submission_id", payload.SubmissionID),
				slog.String("error", err.Error()))
		} else {
			saved = true
		}
	}

	return &SubmissionResult{Result: result, SavedToSheets: saved}, nil
}
