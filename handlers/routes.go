package handlers

import (
	"github.com/gin-gonic/gin"
)

// Register mounts every board route on router.
func Register(router *gin.Engine, comments *CommentHandler, results *ResultsHandler, feed *WebSocketHandler) *gin.Engine {
	router.GET("/alive", comments.Alive)

	router.POST("/comment", comments.Create)
	router.GET("/comments", comments.List)
	router.GET("/comment/:id", comments.Get)
	router.GET("/translate/:id/:lang", comments.Translate)
	router.POST("/like/:id", comments.Like)
	router.POST("/dislike/:id", comments.Dislike)

	router.GET("/results", results.Results)
	router.GET("/ws", feed.Feed)
	return router
}
