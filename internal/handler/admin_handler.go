package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/repository"
	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/examhall/examhall-backend/internal/validator"
)

// AdminHandler handles the admin surface: credentials, roster, question
// uploads, exam lifecycle, and review endpoints.
type AdminHandler struct {
	adminService    *service.AdminService
	authService     *service.AuthService
	rosterService   *service.RosterService
	questionService *service.QuestionService
	examService     *service.ExamService
	answerService   *service.AnswerService
	proctorService  *service.ProctorService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	adminService *service.AdminService,
	authService *service.AuthService,
	rosterService *service.RosterService,
	questionService *service.QuestionService,
	examService *service.ExamService,
	answerService *service.AnswerService,
	proctorService *service.ProctorService,
) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		authService:     authService,
		rosterService:   rosterService,
		questionService: questionService,
		examService:     examService,
		answerService:   answerService,
		proctorService:  proctorService,
	}
}

// Login godoc
// POST /api/v1/admin/login
// Verifies the shared admin secret and returns an admin JWT.
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.adminService.VerifyPassword(c.Request.Context(), req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.IssueAdminToken()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// ChangePassword godoc
// POST /api/v1/admin/change-password
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.adminService.ChangePassword(c.Request.Context(), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed successfully"})
}

// AddStudent godoc
// POST /api/v1/admin/add-student
// Rejects duplicate student IDs; the existing entry is never overwritten.
func (h *AdminHandler) AddStudent(c *gin.Context) {
	var req model.AddStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.rosterService.Add(c.Request.Context(), req.StudentID, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateStudent) {
			response.Fail(c, http.StatusBadRequest, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student added successfully"})
}

// DeleteStudent godoc
// DELETE /api/v1/admin/delete-student/:id
// Succeeds even when the student is absent. Answer and screenshot history
// stays behind; any active session is revoked.
func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	studentID := c.Param("id")

	if err := h.rosterService.Delete(c.Request.Context(), studentID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), studentID); err != nil {
		// Session cleanup failure does not undo the roster deletion.
		response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}

// ListStudents godoc
// GET /api/v1/admin/students
func (h *AdminHandler) ListStudents(c *gin.Context) {
	students, err := h.rosterService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// UploadQuestions godoc
// POST /api/v1/admin/upload-questions
// Atomically replaces the whole question bank; rejected while the exam is
// active.
func (h *AdminHandler) UploadQuestions(c *gin.Context) {
	var req model.UploadQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	count, err := h.questionService.ReplaceAll(c.Request.Context(), req.Questions)
	if err != nil {
		if errors.Is(err, service.ErrExamActive) {
			response.Fail(c, http.StatusBadRequest, response.ErrExamActive)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// ListQuestions godoc
// GET /api/v1/admin/questions
// Full bank including correct answers; no activity precondition.
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListForAdmin(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// StartExam godoc
// POST /api/v1/admin/start-exam
// Starting while already active resets the timer.
func (h *AdminHandler) StartExam(c *gin.Context) {
	var req model.StartExamRequest
	if c.Request.ContentLength > 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	status, err := h.examService.Start(c.Request.Context(), req.DurationMinutes)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"start_time":       status.StartTime,
		"duration_minutes": status.DurationMinutes,
	})
}

// StopExam godoc
// POST /api/v1/admin/stop-exam
// Unconditional; stopping an inactive exam is a no-op success.
func (h *AdminHandler) StopExam(c *gin.Context) {
	if err := h.examService.Stop(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "exam stopped successfully"})
}

// ExamStatus godoc
// GET /api/v1/admin/exam-status
func (h *AdminHandler) ExamStatus(c *gin.Context) {
	snapshot, err := h.examService.Status(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, snapshot)
}

// Submissions godoc
// GET /api/v1/admin/submissions
func (h *AdminHandler) Submissions(c *gin.Context) {
	submissions, err := h.answerService.Submissions(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}

// ListScreenshots godoc
// GET /api/v1/admin/screenshots/:id
// A student's screenshots, newest first.
func (h *AdminHandler) ListScreenshots(c *gin.Context) {
	studentID := c.Param("id")

	shots, err := h.proctorService.Screenshots(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"screenshots": shots})
}
