package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/viant/lineage/internal/cli"
	"github.com/viant/lineage/tracing"
)

func main() {
	log.SetFlags(0)
	ctx := context.Background()
	err := cli.Run(ctx, os.Args[1:], os.Stdout)
	if sErr := tracing.Shutdown(ctx); sErr != nil {
		log.Printf("lineage: failed to flush traces: %v", sErr)
	}
	if err != nil {
		if errors.Is(err, cli.ErrUsage) {
			log.Print(err)
			os.Exit(2)
		}
		log.Printf("lineage: %v", err)
		os.Exit(1)
	}
}
