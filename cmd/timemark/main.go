package main

import "github.com/Fepozopo/timemark/pkg/cli"

// version is set at build time via -ldflags "-X main.version=vX.Y.Z".
var version = "dev"

func main() {
	cli.Run(version)
}
