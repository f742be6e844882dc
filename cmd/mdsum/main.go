// Package main is the mdsum CLI entrypoint.
package main

import (
	"os"

	"mdsum/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run(os.Args[1:]))
}
