package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/examhall/examhall-backend/internal/validator"
)

// ProctorHandler handles the screenshot intake.
type ProctorHandler struct {
	proctorService *service.ProctorService
}

// NewProctorHandler creates a new ProctorHandler.
func NewProctorHandler(proctorService *service.ProctorService) *ProctorHandler {
	return &ProctorHandler{proctorService: proctorService}
}

// UploadScreenshot godoc
// POST /api/v1/proctor/screenshot
// Accepts a base64 PNG (data URL prefix tolerated), stores the blob and its
// metadata record.
func (h *ProctorHandler) UploadScreenshot(c *gin.Context) {
	var req model.UploadScreenshotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !claimsMatch(c, req.StudentID) {
		response.Fail(c, http.StatusForbidden, response.ErrStudentMismatch)
		return
	}

	filename, err := h.proctorService.SaveScreenshot(c.Request.Context(), req.StudentID, req.ImageData)
	if err != nil {
		if errors.Is(err, service.ErrBadImageData) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"filename": filename})
}
