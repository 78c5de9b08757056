package main

import (
	"github.com/zadonuts/donutdex/pkg/cli"
)

func main() {
	cli.Execute()
}
