package statics

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed www/*
var www embed.FS

// ServeStatics serves staticsDir, or the embedded home page when empty.
func ServeStatics(staticsDir string) http.HandlerFunc {
	if staticsDir == "" {
		root, err := fs.Sub(www, "www")
		if err != nil {
			panic(err) // www is embedded, it always exists
		}
		return http.FileServer(http.FS(root)).ServeHTTP
	}
	return http.FileServer(http.Dir(staticsDir)).ServeHTTP
}
