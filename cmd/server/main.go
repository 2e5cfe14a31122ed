package main

import (
	"go.uber.org/fx"
)

// main is the single entry‑point for the REST API.
func main() {
	fx.New(options()).Run()
}
