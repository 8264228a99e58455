//go:build !tinygo

package hub

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/merliot/pitchfork"
)

//go:embed web
var webFS embed.FS

var (
	siteFS     = pitchfork.NewCompositeFS()
	tmpls      *template.Template
	fileServer http.Handler
)

func init() {
	base, err := fs.Sub(pitchfork.WebFS, "web")
	if err != nil {
		log.Fatal(err)
	}
	own, err := fs.Sub(webFS, "web")
	if err != nil {
		log.Fatal(err)
	}
	siteFS.AddFS(base)
	siteFS.AddFS(own)

	tmpls, err = siteFS.ParseFS("*.tmpl", "index.html")
	if err != nil {
		log.Fatal(err)
	}

	fileServer = http.FileServer(http.FS(siteFS))
}

// ServeHTTP serves the fleet dashboard
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		if err := tmpls.ExecuteTemplate(w, "index.html", h); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	fileServer.ServeHTTP(w, r)
}
