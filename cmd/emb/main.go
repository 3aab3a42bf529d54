package main

import (
	"github.com/pierluigi-failla/elastic-mapping-builder/pkg/cli"
)

func main() {
	cli.Execute()
}
