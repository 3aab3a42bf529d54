package main

import (
	"log"

	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
