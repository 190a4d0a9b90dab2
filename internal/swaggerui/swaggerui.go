package swaggerui

import (
	"net/http"

	swgui "github.com/swaggest/swgui/v5"
)

// Handler returns a Swagger UI handler mounted at basePath (assets embedded, no CDN).
func Handler(basePath, specPath string) http.Handler {
	return swgui.New("Agora API", specPath, basePath)
}
