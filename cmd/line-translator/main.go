package main

import "line-translator/internal/cli"

func main() {
	cli.Execute()
}
