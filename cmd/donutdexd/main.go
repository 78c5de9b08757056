package main

import (
	"context"
	"log"

	"github.com/zadonuts/donutdex/pkg/api"
)

func main() {
	if err := api.Serve(context.Background()); err != nil {
		log.Fatal(err)
	}
}
