package main

import (
	"os"

	"github.com/crowdlink/crowdlink/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
