package main

import (
	"log"
	"os"

	"github.com/pixelveil/pixelveil/cmd/pixelveil/cmd"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cmd.Execute()
}
