package router

import (
	"net/http"

	"github.com/campusCompass/backend/internal/handler"
	"github.com/campusCompass/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	RequestHandler *handler.RequestHandler
	TagHandler     *handler.TagHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/peer-requests", deps.RequestHandler.List)
		api.POST("/peer-requests", deps.RequestHandler.Create)
		api.PATCH("/peer-requests", deps.RequestHandler.Update)
		api.DELETE("/peer-requests", deps.RequestHandler.Delete)

		api.GET("/tags", deps.TagHandler.List)
	}
}
