package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"

	"github.com/FlavioCFOliveira/danne/internal/activations"
	"github.com/FlavioCFOliveira/danne/internal/initializer"
	"github.com/FlavioCFOliveira/danne/internal/layer"
	"github.com/FlavioCFOliveira/danne/internal/loss"
	"github.com/FlavioCFOliveira/danne/internal/net"
)

func main() {
	epochs := flag.Int("epochs", 20000, "training epochs")
	lr := flag.Float64("lr", 0.1, "learning rate")
	seed := flag.Uint64("seed", 5, "initializer seed, 0 seeds from the clock")
	bias := flag.String("bias", "once", "bias mode: once or per_synapse")
	hidden := flag.Int("hidden", 4, "hidden layer neurons")
	verbose := flag.Bool("verbose", false, "print every guess and answer")
	save := flag.String("save", "", "save the trained network to this file")
	flag.Parse()

	var mode layer.BiasMode
	if err := mode.UnmarshalText([]byte(*bias)); err != nil {
		log.Fatal(err)
	}
	source, err := initializer.New(initializer.KindMersenneTwister, *seed)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== XOR Training Example ===")
	fmt.Printf("Network architecture: 2-%d-1\n", *hidden)
	fmt.Println("Activation functions: Sigmoid (hidden), Sigmoid (output)")
	fmt.Printf("Learning rate %g, %d epochs, bias %s\n", *lr, *epochs, mode)

	trainX := [][]float64{
		{0, 0},
		{1, 0},
		{0, 1},
		{1, 1},
	}
	trainY := [][]float64{
		{0},
		{1},
		{1},
		{0},
	}

	network := net.New(*lr, *epochs,
		net.WithInitializer(source),
		net.WithBiasMode(mode),
		net.WithCallbacks(net.Logger{Interval: *epochs / 10, Verbose: *verbose}),
	)
	if err := network.SetTrainingInput(trainX); err != nil {
		log.Fatal(err)
	}
	if err := network.AddHiddenLayer(*hidden, activations.KindSigmoid); err != nil {
		log.Fatal(err)
	}
	if err := network.SetTrainingOutput(trainY); err != nil {
		log.Fatal(err)
	}
	network.Summary(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := network.Train(ctx); err != nil {
		log.Fatal(err)
	}

	// Test the network
	fmt.Println("\nTesting trained network:")
	sumAbs := 0.0
	for i := range trainX {
		pred, err := network.FeedForward(trainX[i])
		if err != nil {
			log.Fatal(err)
		}
		sumAbs += loss.SumAbs{}.Forward(pred, trainY[i])
		fmt.Printf("Input: %v, Predicted: %.4f, Target: %v\n", trainX[i], pred[0], trainY[i][0])
	}
	fmt.Printf("Error sum: %.4f\n", sumAbs)
	if *verbose {
		fmt.Println("\nTrained weights:")
		network.PrintWeights(os.Stdout)
	}

	if *save == "" {
		return
	}

	fmt.Println("\nSaving network to disk...")
	if err := network.Save(*save); err != nil {
		log.Fatalf("Error saving network: %v", err)
	}
	loaded, err := net.Load(*save)
	if err != nil {
		log.Fatalf("Error loading network: %v", err)
	}

	fmt.Println("Verifying loaded network:")
	for i := range trainX {
		original, _ := network.FeedForward(trainX[i])
		reloaded, err := loaded.FeedForward(trainX[i])
		if err != nil {
			log.Fatal(err)
		}
		match := "OK"
		if math.Abs(original[0]-reloaded[0]) > 1e-12 {
			match = "MISMATCH"
		}
		fmt.Printf("Input: %v, Original: %.4f, Loaded: %.4f [%s]\n",
			trainX[i], original[0], reloaded[0], match)
	}
}
