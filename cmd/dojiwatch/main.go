package main

import "github.com/rustyeddy/dojiwatch/internal/cli"

func main() {
	cli.Execute()
}
