package main

import (
	"os"

	"github.com/apylist/apylist/internal/app"
)

func main() {
	os.Exit(app.NewRunner().Run(os.Args[1:]))
}
