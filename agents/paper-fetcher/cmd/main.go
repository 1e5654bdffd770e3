package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	paperfetcher "insight-stack/agents/paper-fetcher"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <arxiv-id>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s 2306.01116\n", os.Args[0])
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher := paperfetcher.NewFetcher()
	resources, err := fetcher.FetchAll(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("Failed to fetch paper resources: %v", err)
	}

	paperfetcher.WriteResources(os.Stdout, os.Args[1], resources)
}
