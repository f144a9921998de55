package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck обработчик для проверки работоспособности сервиса.
// driver is reported so operators can see which data store is wired.
func HealthCheck(driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
			"driver": driver,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
