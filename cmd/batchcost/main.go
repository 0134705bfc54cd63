package main

import "github.com/Simplici0/batchcost/internal/cli"

func main() {
	cli.Execute()
}
