package api

import (
	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	parentService service.ParentService,
	checkInService service.CheckInService,
	arcService service.ArcService,
	sessionService service.SessionService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	parentHandler := NewParentHandler(authService, parentService, planService)
	checkInHandler := NewCheckInHandler(checkInService)
	arcHandler := NewArcHandler(arcService)
	sessionHandler := NewSessionHandler(sessionService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/child-login", authHandler.ChildLogin)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": role})
		})

		// --- Catalog ---
		// Read-only; both roles browse the arc library.
		protected.GET("/arcs", arcHandler.ListArcs)

		// --- Child Routes ---
		// Everything under here acts on the authenticated child's own data.
		childGroup := protected.Group("")
		childGroup.Use(RoleMiddleware(domain.RoleChild))
		{
			childGroup.POST("/checkins", checkInHandler.SubmitCheckIn)
			childGroup.GET("/checkins/today", checkInHandler.GetTodayCheckIn)
			childGroup.PUT("/checkins/:checkInId/rating", checkInHandler.RateQuality)

			childGroup.POST("/enrollment", arcHandler.StartArc)
			childGroup.POST("/enrollment/pause", arcHandler.PauseArc)
			childGroup.POST("/enrollment/resume", arcHandler.ResumeArc)
			childGroup.GET("/enrollment/progress", arcHandler.GetProgress)
			childGroup.GET("/enrollment/next", arcHandler.SuggestNext)

			childGroup.GET("/plan/today", planHandler.GetTodayPlan)

			childGroup.POST("/sessions", sessionHandler.LogSession)
			childGroup.GET("/sessions", sessionHandler.GetRecentSessions)
			childGroup.GET("/consistency", sessionHandler.GetConsistency)

			childGroup.POST("/sessions/:sessionId/highlight/upload-url", sessionHandler.RequestHighlightUploadURL)
			childGroup.POST("/sessions/:sessionId/highlight/confirm", sessionHandler.ConfirmHighlightUpload)
		}

		// Highlight playback is shared: the clip's child or their parent.
		protected.GET("/sessions/:sessionId/highlight/download-url", sessionHandler.GetHighlightDownloadURL)

		// --- Parent Routes ---
		parentGroup := protected.Group("/parent")
		parentGroup.Use(RoleMiddleware(domain.RoleParent))
		{
			parentGroup.POST("/children", parentHandler.CreateChild)
			parentGroup.GET("/children", parentHandler.GetChildren)
			parentGroup.PUT("/children/:childId/settings", parentHandler.UpdateChildSettings)
			parentGroup.GET("/children/:childId/overview", parentHandler.GetChildOverview)
			parentGroup.GET("/children/:childId/plan", parentHandler.GetChildPlan)
		}
	}
}
