package main

import "github.com/andrescamacho/fuelroute-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
