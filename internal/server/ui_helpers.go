package server

import (
	"net/http"
	"strings"
)

func isHX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func writeShellWithStatus(w http.ResponseWriter, _ *http.Request, status int, bodyHTML string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(renderShell(bodyHTML)))
}

func writeContent(w http.ResponseWriter, r *http.Request, bodyHTML string) {
	writeContentWithStatus(w, r, http.StatusOK, bodyHTML)
}

func writeContentWithStatus(w http.ResponseWriter, _ *http.Request, status int, bodyHTML string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(bodyHTML))
}

func renderShell(bodyHTML string) string {
	var b strings.Builder
	b.WriteString("<!doctype html><html><head>")
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString("<title>Medical Coverage Console</title>")
	b.WriteString(`<link rel="stylesheet" href="/assets/app.css">`)
	b.WriteString(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
	b.WriteString("</head><body>")
	b.WriteString(bodyHTML)
	b.WriteString("</body></html>")
	return b.String()
}
