// Command api runs the food search and recommendation HTTP service.
package main

import (
	"flag"

	"github.com/howl2go/v2/internal/infrastructure/container"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	container.New(*configPath).Run()
}
