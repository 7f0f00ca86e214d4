package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/FlavioCFOliveira/danne/internal/config"
	"github.com/FlavioCFOliveira/danne/internal/loss"
)

func main() {
	configPath := flag.String("config", "", "YAML run configuration (defaults apply when empty)")
	dataPath := flag.String("data", "", "CSV training data, overrides data.path")
	out := flag.String("out", "", "save the trained network to this file")
	epochs := flag.Int("epochs", -1, "override the configured epoch count")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *epochs >= 0 {
		cfg.Epochs = *epochs
	}

	dataset, err := cfg.LoadData()
	if err != nil {
		log.Fatalf("Failed to load CSV: %v", err)
	}
	fmt.Printf("Loaded %d samples with %d features each.\n", dataset.Len(), len(dataset.Samples[0]))

	train, holdout := cfg.SplitData(dataset)
	if holdout.Len() > 0 {
		fmt.Printf("Holding out %d samples, training on %d.\n", holdout.Len(), train.Len())
	}

	network, err := cfg.Build(train.Samples, train.Labels, cfg.Callbacks(os.Stdout)...)
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}
	network.Summary(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting training...")
	if err := network.Train(ctx); err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	sumAbs, err := network.Evaluate(train.Samples, train.Labels, loss.SumAbs{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Training complete. Error sum over %d samples: %.4f\n", train.Len(), sumAbs)

	if holdout.Len() > 0 {
		heldOut, err := network.Evaluate(holdout.Samples, holdout.Labels, loss.SumAbs{})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Held-out error sum over %d samples: %.4f\n", holdout.Len(), heldOut)
	}

	if *out != "" {
		if err := network.Save(*out); err != nil {
			log.Fatalf("Error saving network: %v", err)
		}
		fmt.Printf("Network saved to %s\n", *out)
	}
}
