package doc

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

const (
	stagingURL    = "https://staging.promptaat.com/api/v1"
	productionURL = "https://api.promptaat.com/api/v1"
)

func swaggerJSON(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := swag.ReadDoc()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read Swagger doc"})
			return
		}

		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Swagger doc"})
			return
		}
		doc["servers"] = serversFor(env)

		out, err := json.Marshal(doc)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Swagger doc"})
			return
		}
		c.Data(http.StatusOK, "application/json", out)
	}
}

// serversFor lists the servers a reader of the docs can call from env
func serversFor(env string) []map[string]string {
	switch env {
	case "production":
		return []map[string]string{{"url": productionURL, "description": "Production Server"}}
	case "staging":
		return []map[string]string{{"url": stagingURL, "description": "Staging Server"}}
	default:
		return []map[string]string{{"url": "http://localhost:8080/api/v1", "description": "Local Development Server"}}
	}
}

const elementsHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Promptaat API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
    <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
    <style>
        body { margin: 0; padding: 0; height: 100vh; }
        elements-api { height: 100%; }
    </style>
</head>
<body>
    <elements-api apiDescriptionUrl="/swagger/doc.json" router="hash" layout="sidebar"></elements-api>
</body>
</html>`

func serveElements(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(elementsHTML))
}

// Init mounts the OpenAPI document and its viewer
func Init(r *gin.Engine, env string) {
	r.GET("/swagger/doc.json", swaggerJSON(env))
	r.GET("/docs/*any", serveElements)
}
