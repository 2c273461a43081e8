package v1

import (
	"net/http"

	"candidate-voting-backend/config"
	"candidate-voting-backend/internal/delivery/http/middleware"
	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/audit"
	"candidate-voting-backend/pkg/auth"
	"candidate-voting-backend/pkg/imaging"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	CandidateUC domain.CandidateUsecase
	ImageUC     domain.ImageUsecase
	ExportUC    domain.ExportUsecase
	HealthUC    domain.HealthUsecase
	Tokens      *auth.TokenManager
	Audit       *audit.Logger
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = imaging.MaxUploadBytes

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURLs)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	if !deps.Config.UseS3() {
		r.Static("/uploads", deps.Config.UploadDir)
	}

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.HealthUC.Check(c.Request.Context())
		if !ok {
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.Audit))

	NewAuthHandler(api, deps.AuthUC)
	NewCandidateHandler(api, protected, deps.CandidateUC, deps.ImageUC, deps.ExportUC)

	return r
}
