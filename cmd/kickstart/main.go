package main

import (
	"github.com/tacogips/kickstart/internal/cli"
)

func main() {
	cli.Execute()
}
