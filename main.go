package main

import "github.com/status-im/solscope/cli"

func main() {
	cli.Execute()
}
