package main

import (
	"github.com/nspcc-dev/chunkprune/cmd/internal/cmderr"
)

func main() {
	err := newCommand().Execute()
	cmderr.ExitOnErr(err)
}
