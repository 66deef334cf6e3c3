package main

import "github.com/aalvaropc/shelf/internal/cli"

func main() {
	cli.Execute()
}
