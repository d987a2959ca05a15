package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	hostingapi "github.com/zenGate-Global/palmyra-hosting/generated/go/hosting"
)

// hostingContract names contracts/hosting.yaml in docs and logs.
const hostingContract = "hosting"

// docSpecs maps public documentation names to the generated swagger loaders.
var docSpecs = map[string]func() (*openapi3.T, error){
	hostingContract: hostingapi.GetSwagger,
}

// docsPage renders Swagger UI for every contract in docSpecs.
const docsPage = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Palmyra Hosting API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-standalone-preset.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        urls: [%s],
        dom_id: '#swagger-ui',
        presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
        layout: 'StandaloneLayout'
      });
    </script>
  </body>
</html>`

func registerDocsRoutes(router chi.Router, logger *zap.Logger) {
	router.Get("/docs", docsUIHandler())
	router.Get("/openapi/{name}.json", openapiJSONHandler(logger))
}

func docsUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, docsPage, docURLs())
	}
}

func openapiJSONHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		load, ok := docSpecs[name]
		if !ok {
			http.NotFound(w, r)
			return
		}

		doc, err := load()
		if err == nil {
			var body []byte
			if body, err = doc.MarshalJSON(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(body)
				return
			}
		}
		logger.Error("serve openapi document", zap.String("contract", name), zap.Error(err))
		http.Error(w, "contract unavailable", http.StatusInternalServerError)
	}
}

// docURLs lists the contracts as Swagger UI url entries, sorted by name.
func docURLs() string {
	names := make([]string, 0, len(docSpecs))
	for name := range docSpecs {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, len(names))
	for i, name := range names {
		entries[i] = fmt.Sprintf("{url: '/openapi/%s.json', name: '%s'}", name, name)
	}
	return strings.Join(entries, ", ")
}

func logSecuritySchemes(logger *zap.Logger, name string, spec *openapi3.T) {
	names := make([]string, 0, len(spec.Components.SecuritySchemes))
	for scheme := range spec.Components.SecuritySchemes {
		names = append(names, scheme)
	}
	sort.Strings(names)
	logger.Info("loaded security schemes", zap.String("contract", name), zap.Strings("names", names))
}
