package net

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Callback receives training progress. Implementations are called from the
// goroutine running Train.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, loss, learningRate float64, n *Network)
	OnSampleEnd(epoch, sample int, output, target []float64, loss float64, n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)            {}
func (c BaseCallback) OnTrainEnd(n *Network)              {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network) {}
func (c BaseCallback) OnEpochEnd(epoch int, loss, learningRate float64, n *Network) {
}
func (c BaseCallback) OnSampleEnd(epoch, sample int, output, target []float64, loss float64, n *Network) {
}

// Logger logs training progress. With Verbose set it also prints the guess
// and the expected answer for every sample.
type Logger struct {
	BaseCallback
	Writer   io.Writer // os.Stdout when nil
	Interval int
	Verbose  bool
}

func (c Logger) out() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

func (c Logger) OnEpochEnd(epoch int, loss, learningRate float64, n *Network) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		fmt.Fprintf(c.out(), "Epoch %d: loss = %.6f (lr = %g)\n", epoch, loss, learningRate)
	}
}

func (c Logger) OnSampleEnd(epoch, sample int, output, target []float64, loss float64, n *Network) {
	if !c.Verbose {
		return
	}
	fmt.Fprintf(c.out(), "Guess: %s\tAnswer: %s\n", formatRow(output), formatRow(target))
}

func formatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return strings.Join(parts, "\t")
}

// ModelCheckpoint saves the network after every epoch that improves on the
// best loss seen so far.
type ModelCheckpoint struct {
	BaseCallback
	Filename string
	Writer   io.Writer // progress messages; os.Stdout when nil

	bestLoss float64
	Err      error // last save error, if any
}

func NewModelCheckpoint(filename string) *ModelCheckpoint {
	return &ModelCheckpoint{
		Filename: filename,
		bestLoss: math.MaxFloat64,
	}
}

func (c *ModelCheckpoint) OnEpochEnd(epoch int, loss, learningRate float64, n *Network) {
	if loss >= c.bestLoss {
		return
	}
	c.bestLoss = loss

	w := c.Writer
	if w == nil {
		w = os.Stdout
	}
	if err := n.Save(c.Filename); err != nil {
		c.Err = err
		fmt.Fprintf(w, "Error saving checkpoint: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Checkpoint saved: loss %.6f is new best\n", loss)
}

// BestLoss returns the lowest epoch loss seen so far.
func (c *ModelCheckpoint) BestLoss() float64 { return c.bestLoss }

// History records every epoch loss and learning rate.
type History struct {
	BaseCallback
	Losses        []float64
	LearningRates []float64
	Samples       int
}

func (h *History) OnEpochEnd(epoch int, loss, learningRate float64, n *Network) {
	h.Losses = append(h.Losses, loss)
	h.LearningRates = append(h.LearningRates, learningRate)
}

func (h *History) OnSampleEnd(epoch, sample int, output, target []float64, loss float64, n *Network) {
	h.Samples++
}
