package main

import "github.com/riskibarqy/playerstats/internal/cli"

func main() {
	cli.Execute()
}
