package main

import (
	"os"

	"github.com/localguide-ai/localguide/cmd/localguide"
)

func main() {
	if err := localguide.Execute(); err != nil {
		os.Exit(1)
	}
}
