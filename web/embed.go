package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var views embed.FS

// NewEngine returns the template engine over the embedded views. Template
// names are paths below views/ without the extension, e.g. "recipes/index".
func NewEngine() *html.Engine {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.AddFunc("dec", func(i int) int { return i - 1 })
	return engine
}
