package cmd

import (
	"log"

	"github.com/lumenworks/imageproc/server"
)

// Serve builds the HTTP server from the given settings and blocks until the
// listener fails.
func Serve(port, maxDimension, quality int, debug bool) {
	srv := server.New(server.Config{
		MaxDimension: maxDimension,
		Quality:      quality,
		Debug:        debug,
	})

	if err := srv.Run(port); err != nil {
		log.Fatal(err)
	}
}
