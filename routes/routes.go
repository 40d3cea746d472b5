package routes

import (
	"net/http"
	"time"

	"roadcare/handlers"
	"roadcare/middleware"
	"roadcare/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRequestRoutes registers the service request lifecycle endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Mechanics))
		api.POST("", middleware.RequireRole(models.RoleCustomer), hb.Requests.CreateRequest)
		api.GET("", hb.Requests.ListRequests)
		api.GET("/:id", hb.Requests.GetRequest)
		api.PATCH("/:id/status", hb.Requests.TransitionStatus)
		api.PATCH("/:id/cost", middleware.RequireRole(models.RoleMechanic), hb.Requests.SetCost)
		api.POST("/:id/assign", middleware.RequireRole(models.RoleAdmin), hb.Assignments.AssignMechanic)
		api.POST("/:id/updates", middleware.RequireRole(models.RoleMechanic), hb.Updates.AppendUpdate)
		api.GET("/:id/updates", hb.Updates.ListUpdates)
	}
}

// RegisterNotificationRoutes registers the durable inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Mechanics))
		api.GET("", hb.Notifications.ListNotifications)
		api.GET("/unread-count", hb.Notifications.UnreadCount)
		api.PATCH("/:id/read", hb.Notifications.MarkRead)
	}
}

// RegisterDiscoveryRoutes registers workshop ranking and mechanic search.
func RegisterDiscoveryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Mechanics))
		api.GET("/workshops/nearby", hb.Discovery.NearbyWorkshops)
		api.GET("/search/mechanics", hb.Discovery.SearchMechanics)
		api.GET("/workshops/mechanics", middleware.RequireRole(models.RoleAdmin), hb.Staff.ListWorkshopMechanics)
		api.GET("/mechanics/:id/schedule", hb.Staff.MechanicSchedule)
	}
}

// RegisterRealtimeRoutes registers the websocket channel.
func RegisterRealtimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws", middleware.JWTAuthMiddleware(hb.Mechanics), hb.WS.Connect)
}

// RegisterUploadRoutes registers image upload endpoints.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/uploads", middleware.JWTAuthMiddleware(hb.Mechanics), hb.Uploads.UploadImage)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRequestRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterDiscoveryRoutes(r, hb)
	RegisterRealtimeRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterHealthRoute(r)
}
