package main

import (
	"os"

	"github.com/clipscrub/clipscrub/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
