package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. An empty frontendURL allows any origin.
func NewRouter(h *Handler, frontendURL string) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(), RequestLogger())

	headers := cors.DefaultConfig()
	if frontendURL != "" {
		headers.AllowOrigins = []string{frontendURL}
		headers.AllowCredentials = true
	} else {
		headers.AllowAllOrigins = true
	}
	headers.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	headers.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	headers.ExposeHeaders = []string{"Content-Length"}
	r.Use(cors.New(headers))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		// Catalog routes - a token only marks favorites
		catalog := api.Group("", OptionalAuth(h.tokens))
		{
			catalog.GET("/places", h.ListPlaces)
			catalog.GET("/places/:id", h.GetPlace)
			catalog.GET("/categories", h.ListCategories)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", h.Signup)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/me", RequireAuth(h.tokens), h.Me)
		}

		protected := api.Group("", RequireAuth(h.tokens))
		{
			protected.GET("/favorites", h.ListFavorites)
			protected.POST("/favorites/:id", h.ToggleFavorite)
			protected.POST("/chat", h.Chat)
			protected.GET("/chat/history", h.ChatHistory)
		}

		admin := api.Group("/admin", RequireAuth(h.tokens), RequireAdmin())
		{
			admin.POST("/places", h.CreatePlace)
			admin.PUT("/places/:id", h.UpdatePlace)
			admin.DELETE("/places/:id", h.DeletePlace)
		}
	}

	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"assistant": h.assistantConfigured,
	})
}
