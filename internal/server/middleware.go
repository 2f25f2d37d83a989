package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// JSONMiddleware enforces JSON request bodies and stamps the response
// content type.
func JSONMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/json; charset=utf-8")

		if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut || c.Request.Method == http.MethodPatch {
			contentType := c.GetHeader("Content-Type")
			if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
				c.JSON(http.StatusUnsupportedMediaType, APIResponse{
					Success: false,
					Error:   "Content-Type must be application/json",
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
