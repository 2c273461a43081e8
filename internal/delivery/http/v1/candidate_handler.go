package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"candidate-voting-backend/internal/delivery/http/response"
	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"
	"candidate-voting-backend/pkg/imaging"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	imageUC     domain.ImageUsecase
	exportUC    domain.ExportUsecase
}

type InteractRequest struct {
	Action string `json:"action" example:"like"`
}

func NewCandidateHandler(public, protected *gin.RouterGroup, candidateUC domain.CandidateUsecase, imageUC domain.ImageUsecase, exportUC domain.ExportUsecase) {
	handler := &CandidateHandler{
		candidateUC: candidateUC,
		imageUC:     imageUC,
		exportUC:    exportUC,
	}

	publicCandidates := public.Group("/candidates")
	{
		publicCandidates.GET("", handler.List)
		publicCandidates.GET("/:id", handler.Get)
		publicCandidates.POST("/:id/interact", handler.Interact)
	}

	adminCandidates := protected.Group("/candidates")
	{
		adminCandidates.GET("/export", handler.Export)
		adminCandidates.POST("", handler.Create)
		adminCandidates.PUT("/:id", handler.Update)
		adminCandidates.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List candidates
// @Description  All candidates with like, dislike and view counts, most liked first.
// @Tags         candidates
// @Produce      json
// @Success      200  {array}   domain.CandidateSummary
// @Failure      500  {object}  response.ErrorResponse
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidateUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Get godoc
// @Summary      Get a candidate
// @Description  Records a view for the calling visitor and returns the candidate with their current vote.
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  domain.CandidateDetail
// @Failure      404  {object}  response.ErrorResponse
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	detail, err := h.candidateUC.Get(c.Request.Context(), c.Param("id"), visitorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Interact godoc
// @Summary      Like or dislike a candidate
// @Description  Toggles the visitor's vote. Repeating a vote clears it; the other vote replaces it.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Candidate ID"
// @Param        request  body      InteractRequest  true  "like or dislike"
// @Success      200      {object}  domain.InteractionResult
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /candidates/{id}/interact [post]
func (h *CandidateHandler) Interact(c *gin.Context) {
	var req InteractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(domain.MsgInvalidAction))
		return
	}

	res, err := h.candidateUC.Interact(c.Request.Context(), c.Param("id"), visitorID(c), req.Action)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Create godoc
// @Summary      Create a candidate
// @Description  Accepts JSON or multipart/form-data with an optional "image" file.
// @Tags         candidates
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        candidate  body      domain.CandidateInput  true  "Candidate fields"
// @Success      201        {object}  domain.Candidate
// @Failure      400        {object}  response.ErrorResponse
// @Failure      401        {object}  response.ErrorResponse
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	in, err := h.bindCandidateInput(c)
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// Update godoc
// @Summary      Update a candidate
// @Description  Partial update; omitted fields keep their values. Votes and views cannot be edited.
// @Tags         candidates
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string                 true  "Candidate ID"
// @Param        candidate  body      domain.CandidateInput  true  "Fields to change"
// @Success      200        {object}  domain.Candidate
// @Failure      400        {object}  response.ErrorResponse
// @Failure      401        {object}  response.ErrorResponse
// @Failure      404        {object}  response.ErrorResponse
// @Router       /candidates/{id} [put]
func (h *CandidateHandler) Update(c *gin.Context) {
	in, err := h.bindCandidateInput(c)
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// Delete godoc
// @Summary      Delete a candidate
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, domain.MsgCandidateRemoved)
}

// Export godoc
// @Summary      Download standings
// @Tags         candidates
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Security     BearerAuth
// @Param        format  query     string  false  "xlsx (default) or csv"
// @Success      200     {file}    file
// @Failure      400     {object}  response.ErrorResponse
// @Failure      401     {object}  response.ErrorResponse
// @Router       /candidates/export [get]
func (h *CandidateHandler) Export(c *gin.Context) {
	file, err := h.exportUC.ExportStandings(c.Request.Context(), c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// bindCandidateInput reads candidate fields from JSON or a multipart form.
// A multipart "image" file is processed and stored, and its URL replaces imageUrl.
func (h *CandidateHandler) bindCandidateInput(c *gin.Context) (domain.CandidateInput, error) {
	var in domain.CandidateInput
	if err := c.ShouldBind(&in); err != nil {
		return in, apperror.BadRequest("Invalid request body")
	}

	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return in, nil
	}

	fileHeader, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return in, apperror.BadRequest("Invalid image upload")
	}
	if fileHeader.Size > imaging.MaxUploadBytes {
		return in, apperror.BadRequest(fmt.Sprintf("Image must be at most %d MB", imaging.MaxUploadBytes>>20))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return in, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadBytes+1))
	if err != nil {
		return in, apperror.Internal(err)
	}

	url, err := h.imageUC.Upload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		return in, err
	}
	in.ImageURL = &url
	return in, nil
}
