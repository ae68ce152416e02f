package main

import (
	"github.com/NVIDIA/cdda-json-browser/pkg/cli"
)

func main() {
	cli.Execute()
}
