package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/andymccutcheon/return-to-print/internal/client"
	"github.com/andymccutcheon/return-to-print/internal/config"
	"github.com/andymccutcheon/return-to-print/internal/printer"
	"github.com/andymccutcheon/return-to-print/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatal(err)
	}

	queue := client.NewQueueClient(cfg.APIBaseURL)
	device := printer.NewSerialPrinter(cfg.Printer.Port, cfg.Printer.Baud, cfg.Printer.Recipient)

	w, err := worker.New(queue, device, worker.Config{
		PollInterval:   cfg.PollInterval,
		ReconnectDelay: cfg.ReconnectDelay,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Run(ctx)
}
