// Package main is the content administration CLI for the site.
package main

import (
	"log"

	"github.com/louisbranch/louisbranch.dev/internal/cmd/sitectl"
	"github.com/louisbranch/louisbranch.dev/internal/platform/config"
)

func main() {
	log.SetPrefix("[SITECTL] ")
	if err := sitectl.Execute(); err != nil {
		config.Exitf("Error: %v", err)
	}
}
