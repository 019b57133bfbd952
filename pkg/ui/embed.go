// Package ui provides the embedded browser front end.
//
// The page collects a video URL, calls /video-info and renders one button
// per returned format.
package ui

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Assets returns the front-end files rooted at the static directory.
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}

// IndexHTML is the single-page front end.
var IndexHTML = mustRead("index.html")

func mustRead(name string) []byte {
	data, err := fs.ReadFile(Assets(), name)
	if err != nil {
		panic(err)
	}
	return data
}
