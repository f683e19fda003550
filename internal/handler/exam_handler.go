package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/examhall/examhall-backend/internal/middleware"
	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/repository"
	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/examhall/examhall-backend/internal/validator"
)

// ExamHandler handles the student-facing exam surface.
type ExamHandler struct {
	rosterService   *service.RosterService
	authService     *service.AuthService
	examService     *service.ExamService
	questionService *service.QuestionService
	answerService   *service.AnswerService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(
	rosterService *service.RosterService,
	authService *service.AuthService,
	examService *service.ExamService,
	questionService *service.QuestionService,
	answerService *service.AnswerService,
) *ExamHandler {
	return &ExamHandler{
		rosterService:   rosterService,
		authService:     authService,
		examService:     examService,
		questionService: questionService,
		answerService:   answerService,
	}
}

// StudentLogin godoc
// POST /api/v1/exam/student-login
// Verifies roster credentials and returns a session token. A new login
// replaces any previous session for the same student.
func (h *ExamHandler) StudentLogin(c *gin.Context) {
	var req model.StudentLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.rosterService.Authenticate(c.Request.Context(), req.StudentID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.IssueStudentToken(c.Request.Context(), student.StudentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"student": gin.H{
			"student_id": student.StudentID,
			"name":       student.Name,
		},
	})
}

// Status godoc
// GET /api/v1/exam/status
// Public status snapshot; clients use it to compute the countdown.
func (h *ExamHandler) Status(c *gin.Context) {
	snapshot, err := h.examService.Status(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, snapshot)
}

// ListQuestions godoc
// GET /api/v1/exam/questions
// Redacted question list; only served during the exam-active window.
func (h *ExamHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListForStudent(c.Request.Context())
	if err != nil {
		failGate(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// GetQuestion godoc
// GET /api/v1/exam/question/:id
func (h *ExamHandler) GetQuestion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.GetForStudent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		failGate(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// SubmitAnswer godoc
// POST /api/v1/exam/answer
// Idempotent upsert: resubmission overwrites the previous row.
func (h *ExamHandler) SubmitAnswer(c *gin.Context) {
	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !claimsMatch(c, req.StudentID) {
		response.Fail(c, http.StatusForbidden, response.ErrStudentMismatch)
		return
	}

	err := h.answerService.Submit(c.Request.Context(), req.StudentID, req.QuestionID, req.SelectedAnswer)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOption) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidOption)
			return
		}
		failGate(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "answer saved successfully"})
}

// Finish godoc
// POST /api/v1/exam/submit
// Advisory completion marker: reports the answered count without locking
// out further submissions.
func (h *ExamHandler) Finish(c *gin.Context) {
	var req model.FinishExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !claimsMatch(c, req.StudentID) {
		response.Fail(c, http.StatusForbidden, response.ErrStudentMismatch)
		return
	}

	total, err := h.answerService.Finish(c.Request.Context(), req.StudentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student_id":     req.StudentID,
		"total_answered": total,
	})
}

// MyAnswers godoc
// GET /api/v1/exam/my-answers/:id
// Current answer snapshot; works after the exam stops (review).
func (h *ExamHandler) MyAnswers(c *gin.Context) {
	studentID := c.Param("id")

	if !claimsMatch(c, studentID) {
		response.Fail(c, http.StatusForbidden, response.ErrStudentMismatch)
		return
	}

	answers, err := h.answerService.AnswersFor(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answers": answers})
}

// claimsMatch reports whether the authenticated student matches the
// student_id named in the request. Admin tokens pass unconditionally.
func claimsMatch(c *gin.Context, studentID string) bool {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return false
	}
	if claims.TokenType == service.TokenTypeAdmin {
		return true
	}
	return claims.StudentID == studentID
}

// failGate maps activity-window errors onto their HTTP statuses.
func failGate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamInactive):
		response.Fail(c, http.StatusForbidden, response.ErrExamNotActive)
	case errors.Is(err, service.ErrDeadlinePassed):
		response.Fail(c, http.StatusForbidden, response.ErrDeadlinePassed)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
