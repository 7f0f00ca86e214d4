// Command inference runs a saved network over rows of a CSV file, or over
// the rows given on the command line.
//
//	go run ./cmd/inference -model xor.gob 0,0 1,0
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/FlavioCFOliveira/danne/internal/net"
)

func main() {
	model := flag.String("model", "", "network file written by -save or -out")
	data := flag.String("data", "", "CSV file of input rows")
	header := flag.Bool("header", false, "skip the first CSV line")
	summary := flag.Bool("summary", false, "print the layer table before predicting")
	weights := flag.Bool("weights", false, "print every neuron's weights and bias before predicting")
	flag.Parse()

	if *model == "" {
		log.Fatal("-model is required")
	}
	network, err := net.Load(*model)
	if err != nil {
		log.Fatalf("Error loading network: %v", err)
	}
	if *summary {
		network.Summary(os.Stdout)
	}
	if *weights {
		network.PrintWeights(os.Stdout)
	}

	var rows [][]float64
	if *data != "" {
		ds, err := net.LoadCSV(*data, nil, *header)
		if err != nil {
			log.Fatalf("Failed to load CSV: %v", err)
		}
		rows = ds.Samples
	} else {
		records := make([][]string, 0, flag.NArg())
		for _, arg := range flag.Args() {
			records = append(records, strings.Split(arg, ","))
		}
		ds, err := net.ParseRecords(records, nil)
		if err != nil {
			log.Fatal(err)
		}
		rows = ds.Samples
	}

	for _, row := range rows {
		out, err := network.FeedForward(row)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Input: %v, Output: %.4f\n", row, out)
	}
}
