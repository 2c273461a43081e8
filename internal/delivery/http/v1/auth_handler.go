package v1

import (
	"net/http"

	"candidate-voting-backend/internal/delivery/http/response"
	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
	}
}

// Register godoc
// @Summary      Register the portal administrator
// @Description  Creates the single admin account. Locked once an admin exists.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterRequest  true  "Admin details"
// @Success      201       {object}  response.MessageResponse
// @Failure      400       {object}  response.ErrorResponse
// @Failure      403       {object}  response.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	// A body that fails to bind still goes through Register as an empty
	// request, so a locked portal answers 403 before the body is judged.
	var req domain.RegisterRequest
	bindErr := c.ShouldBindJSON(&req)
	if bindErr != nil {
		req = domain.RegisterRequest{}
	}

	if err := h.authUC.Register(c.Request.Context(), req); err != nil {
		if bindErr != nil && apperror.As(err).Code == http.StatusBadRequest {
			err = apperror.BadRequest("Invalid request body")
		}
		c.Error(err)
		return
	}

	response.Message(c, http.StatusCreated, domain.MsgAdminCreated)
}

// Login godoc
// @Summary      Admin login
// @Description  Exchanges credentials for a bearer token valid for 30 days.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginRequest  true  "Credentials"
// @Success      200    {object}  domain.LoginResult
// @Failure      400    {object}  response.ErrorResponse
// @Failure      401    {object}  response.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.authUC.Login(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}
