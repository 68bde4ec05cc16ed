package main

import (
	"os"

	"github.com/zostay/go-mimetree/cmd/mimetool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
