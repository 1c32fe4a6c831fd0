package main

import (
	"os"

	"github.com/schmitthub/mandown/internal/mandown"
)

func main() {
	os.Exit(mandown.Main())
}
