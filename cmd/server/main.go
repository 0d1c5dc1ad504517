// Package main implements the entry point for the IOL calculation API
// server, which computes intraocular lens power from ocular biometry
// for cataract surgery planning.
package main

import (
	"context"
	"log"
)

// main is the entry point for the iolcalc-api server. It initializes
// configuration, logging, and the calculation services, then runs the
// HTTP server until a shutdown signal arrives.
func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
