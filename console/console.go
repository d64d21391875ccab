// Package console serves a small review UI and REST API over a
// feeddetector.Store: a human can submit a url to detect and see its
// ranked feed regions, and see recently detected urls.
package console

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	feeddetector "github.com/webos-goodies/feed-detector"
)

// Console is an http.Handler serving the review UI and its REST API.
type Console struct {
	store  feeddetector.Store
	router *mux.Router
	render *render.Render
}

// New builds a Console backed by store. store may be nil, in which case
// PutDetection/RecentDetections calls are skipped and the UI only ever
// shows the result of the most recent in-request analysis.
func New(store feeddetector.Store) *Console {
	c := &Console{
		store: store,
		render: render.New(render.Options{
			Directory:     feeddetector.Config.Console.TemplateDirectory,
			Layout:        "layout",
			IndentJSON:    true,
			IsDevelopment: true,
			Funcs: []template.FuncMap{{
				"percent": percentFunc,
			}},
		}),
	}
	c.router = mux.NewRouter()
	c.router.HandleFunc("/", c.home).Methods(http.MethodGet)
	c.router.HandleFunc("/analyze", c.analyze).Methods(http.MethodPost)
	c.router.HandleFunc("/rest/analyze", c.restAnalyze).Methods(http.MethodPost)
	c.router.PathPrefix("/public/").Handler(http.StripPrefix("/public/",
		http.FileServer(http.Dir(feeddetector.Config.Console.PublicFolder))))
	return c
}

// ServeHTTP implements http.Handler.
func (c *Console) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	c.router.ServeHTTP(w, req)
}

// percentFunc renders a group's score with two decimal places for the
// result templates, prefixing positive scores with "+".
func percentFunc(score float64) string {
	s := strconv.FormatFloat(score, 'f', 2, 64)
	if score > 0 {
		return "+" + s
	}
	return s
}
