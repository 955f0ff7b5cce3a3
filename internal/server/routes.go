package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"evote-service/internal/server/handlers"
	"evote-service/internal/server/middleware"
)

// Handlers bundles the route handlers so SetupRoutes stays a readable list
// instead of a twelve-parameter function.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Election     *handlers.ElectionHandler
	Role         *handlers.RoleHandler
	Position     *handlers.PositionHandler
	Candidate    *handlers.CandidateHandler
	VoterToken   *handlers.VoterTokenHandler
	Vote         *handlers.VoteHandler
	Results      *handlers.ResultsHandler
	Notification *handlers.NotificationHandler
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(router *gin.Engine, h Handlers, jwtSecret string) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/redeem", h.Auth.Redeem)
		}

		// Election lookup by join code, for the join and redeem flows
		public.GET("/elections/token/:token", h.Election.GetByToken)
	}

	// Protected routes (require JWT authentication)
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	{
		protected.POST("/elections", h.Election.RequestWorkspace)
		protected.GET("/elections", h.Election.ListMine)
		protected.POST("/elections/token/:token/join", h.Election.Join)
		protected.POST("/elections/:id/approve", h.Election.Approve)
		protected.POST("/elections/:id/reject", h.Election.Reject)

		protected.GET("/elections/:id/positions", h.Position.List)
		protected.POST("/elections/:id/positions", h.Position.Add)
		protected.PUT("/positions/:id", h.Position.Update)
		protected.DELETE("/positions/:id", h.Position.Delete)

		protected.GET("/elections/:id/candidates", h.Candidate.List)
		protected.POST("/elections/:id/candidates", h.Candidate.Add)
		protected.PUT("/candidates/:id", h.Candidate.Update)
		protected.DELETE("/candidates/:id", h.Candidate.Delete)

		protected.POST("/elections/:id/tokens", h.VoterToken.Issue)
		protected.GET("/elections/:id/tokens", h.VoterToken.List)

		protected.POST("/elections/:id/votes", h.Vote.Cast)
		protected.GET("/elections/:id/votes/mine", h.Vote.ListMine)
		protected.GET("/elections/:id/progress", h.Vote.Progress)

		protected.GET("/elections/:id/results", h.Results.Get)
		protected.POST("/elections/:id/results/approve", h.Results.Approve)
		protected.POST("/elections/:id/results/disapprove", h.Results.Disapprove)
		protected.GET("/elections/:id/stats", h.Results.Stats)
		protected.GET("/elections/:id/audit", h.Results.Audit)

		protected.GET("/roles", h.Role.ListMine)
		protected.POST("/roles/:id/approval", h.Role.SetApproval)

		protected.GET("/notifications", h.Notification.List)
		protected.POST("/notifications/:id/read", h.Notification.MarkRead)
	}
}
