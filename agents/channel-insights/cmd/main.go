package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	channelinsights "insight-stack/agents/channel-insights"
	"insight-stack/shared/config"
	"insight-stack/shared/scheduler"
)

func main() {
	channelURL := flag.String("channel", "", "YouTube channel URL to analyze (overrides config)")
	maxVideos := flag.Int("max-videos", 0, "maximum number of recent videos to analyze (overrides config)")
	watch := flag.Bool("watch", false, "keep running and analyze on the configured schedule")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *channelURL != "" {
		cfg.ChannelURL = *channelURL
	}
	if *maxVideos > 0 {
		cfg.MaxVideos = *maxVideos
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agent := channelinsights.NewChannelInsightsAgent(cfg)
	s := scheduler.New(cfg, agent)

	if *watch {
		fmt.Println("Starting scheduler...")
		if err := s.Start(ctx); err != nil {
			log.Fatalf("Scheduler failed: %v", err)
		}
		return
	}

	if err := agent.Initialize(); err != nil {
		log.Fatalf("Failed to initialize agent: %v", err)
	}
	if err := s.RunOnce(ctx); err != nil {
		if errors.Is(err, channelinsights.ErrNoVideos) {
			log.Printf("No videos found for %s", cfg.ChannelURL)
			os.Exit(1)
		}
		log.Fatalf("Failed to run: %v", err)
	}
}
