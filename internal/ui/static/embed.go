// Пакет static: встроенные статические ресурсы dashboard (CSS).
package static

import (
	"embed"
	"net/http"
)

//go:embed css/*.css
var content embed.FS

// FileSystem возвращает http.FileSystem для /static/*.
func FileSystem() http.FileSystem {
	return http.FS(content)
}
