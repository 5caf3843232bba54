package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/andrescamacho/fuelroute-go/internal/adapters/cli"
)

func main() {
	// Parse command-line flags
	configFlag := flag.String("config", "", "Path to config file (default: search ./config.yaml, ./configs, /etc/fuelroute)")
	addressFlag := flag.String("address", "", "Listen address (overrides server.address)")
	forceFlag := flag.Bool("force", false, "Stop any running server and start a new one")
	flag.Parse()

	fmt.Println("Fuelroute Server v0.1.0")
	fmt.Println("=======================")

	err := cli.RunServer(cli.ServerFlags{
		ConfigPath: *configFlag,
		Address:    *addressFlag,
		Force:      *forceFlag,
	})
	if err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
