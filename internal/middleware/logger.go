package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		// 处理请求
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// 5xx 附带错误信息
		if status >= 500 && len(c.Errors) > 0 {
			log.Printf("[HTTP] %s %s %s %d %v err=%s",
				c.Request.Method, path, c.ClientIP(), status, latency, c.Errors.String())
			return
		}
		log.Printf("[HTTP] %s %s %s %d %v",
			c.Request.Method,
			path,
			c.ClientIP(),
			status,
			latency,
		)
	}
}
