// Package handlers serves the live chart dashboard.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mokeyzz1/buzzline-04-moses/internal/render"
)

const livePage = `<!DOCTYPE html>
<html>
<head>
<title>Real-Time Sentiment Trend</title>
<meta http-equiv="refresh" content="1">
</head>
<body style="margin:0;background:#111;display:flex;justify-content:center;align-items:center;height:100vh">
<img src="/chart.png" alt="sentiment trend chart" style="max-width:100%">
</body>
</html>
`

const finalPage = `<!DOCTYPE html>
<html>
<head>
<title>Real-Time Sentiment Trend (final)</title>
</head>
<body style="margin:0;background:#111;display:flex;justify-content:center;align-items:center;height:100vh">
<img src="/chart.png" alt="final sentiment trend chart" style="max-width:100%">
</body>
</html>
`

// Dashboard serves an HTML page showing the chart. While the surface is live
// the page refreshes itself; once the loop has finished it becomes a static
// view of the final frame.
func Dashboard(surface *render.MemorySurface) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := finalPage
		if surface.Live() {
			page = livePage
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	}
}

// ChartPNG serves the most recent rendered frame
func ChartPNG(surface *render.MemorySurface) gin.HandlerFunc {
	return func(c *gin.Context) {
		frame := surface.Frame()
		if len(frame) == 0 {
			c.Status(http.StatusNoContent)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", frame)
	}
}
