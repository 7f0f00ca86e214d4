package net

import (
	"fmt"
	"io"
	"strings"
)

// Summary prints a table of the network's layers.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Network")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-12s %-12s %-10s\n", "Layer", "Activation", "Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")

	totalParams := 0
	for i, l := range n.Layers() {
		name := n.layerName(i)
		params := l.Len() * (l.Synapses() + 1)
		totalParams += params

		shape := fmt.Sprintf("(%d -> %d)", l.Synapses(), l.Len())
		fmt.Fprintf(w, "%-25s %-12s %-12s %-10d\n", name, l.Activation(), shape, params)
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", totalParams)
	fmt.Fprintf(w, "State: %s, bias: %s, learning rate: %g, epochs: %d\n",
		n.state, n.biasMode, n.learningRate, n.epochs)
	fmt.Fprintln(w, "_________________________________________________________________")
}

// PrintWeights writes every neuron's weights and bias, one neuron per line.
func (n *Network) PrintWeights(w io.Writer) {
	for i, l := range n.Layers() {
		fmt.Fprintf(w, "%s (%s)\n", n.layerName(i), l.Activation())
		for j, nr := range l.Neurons() {
			weights := make([]string, nr.Synapses())
			for k, v := range nr.Weights() {
				weights[k] = fmt.Sprintf("%.6f", v)
			}
			fmt.Fprintf(w, "  neuron %d %s: weights [%s] bias %.6f\n",
				j, nr.ID(), strings.Join(weights, " "), nr.Bias())
		}
	}
}

func (n *Network) layerName(i int) string {
	if i == len(n.hidden) {
		return "output"
	}
	return fmt.Sprintf("hidden_%d", i)
}
