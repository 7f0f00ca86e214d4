package net

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/danne/internal/loss"
	"github.com/FlavioCFOliveira/danne/internal/opt"
)

// counter records how often each hook fires.
type counter struct {
	begin, end, epochs, samples int
	order                       []int
}

func (c *counter) OnTrainBegin(n *Network)            { c.begin++ }
func (c *counter) OnTrainEnd(n *Network)              { c.end++ }
func (c *counter) OnEpochBegin(epoch int, n *Network) {}
func (c *counter) OnEpochEnd(epoch int, loss, learningRate float64, n *Network) {
	c.epochs++
}
func (c *counter) OnSampleEnd(epoch, sample int, output, target []float64, loss float64, n *Network) {
	c.samples++
	if epoch == 0 {
		c.order = append(c.order, sample)
	}
}

func TestTrainerCycleCount(t *testing.T) {
	n := newXOR(t, 0.1, 25, 1)
	c := &counter{}
	tr := &Trainer{Network: n, Callbacks: []Callback{c}}

	require.NoError(t, tr.Run(context.Background()))
	assert.Equal(t, 1, c.begin)
	assert.Equal(t, 1, c.end)
	assert.Equal(t, 25, c.epochs)
	assert.Equal(t, 25*4, c.samples)
	assert.Equal(t, []int{0, 1, 2, 3}, c.order)
}

func TestTrainerCancel(t *testing.T) {
	n := newXOR(t, 0.1, 1000, 1)
	ctx, cancel := context.WithCancel(context.Background())
	c := &counter{}
	stop := &sampleHook{fn: func(sample int) {
		if sample == 2 {
			cancel()
		}
	}}
	tr := &Trainer{Network: n, Callbacks: []Callback{c, stop}}

	err := tr.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, c.samples)
	assert.Equal(t, 1, c.end)
	assert.Equal(t, StateTrained, n.State())
}

func TestTrainerCanceledBeforeStart(t *testing.T) {
	n := newXOR(t, 0.1, 10, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	before := n.OutputLayer().Neuron(0).Weights()
	err := (&Trainer{Network: n}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, n.OutputLayer().Neuron(0).Weights())
	assert.Equal(t, StateReady, n.State())
}

func TestTrainerNoNetwork(t *testing.T) {
	err := (&Trainer{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidNetworkState)
}

func TestTrainerScheduler(t *testing.T) {
	n := newXOR(t, 1, 3, 1)
	h := &History{}
	tr := &Trainer{
		Network:   n,
		Scheduler: opt.NewExponentialLR(1, 0.5),
		Callbacks: []Callback{h},
	}

	require.NoError(t, tr.Run(context.Background()))
	assert.Equal(t, []float64{1, 0.5, 0.25}, h.LearningRates)
	assert.Equal(t, 12, h.Samples)
	assert.Equal(t, 1.0, n.LearningRate())
}

func TestNetworkSchedulerOption(t *testing.T) {
	h := &History{}
	n := newXOR(t, 0.3, 4, 1, WithScheduler(opt.NewStepLR(0.3, 2, 0.1)), WithCallbacks(h))

	require.NoError(t, n.Train(context.Background()))
	require.Len(t, h.LearningRates, 4)
	assert.InDelta(t, 0.3, h.LearningRates[1], 1e-12)
	assert.InDelta(t, 0.03, h.LearningRates[2], 1e-12)
}

func TestTrainerLoss(t *testing.T) {
	n := newXOR(t, 0.1, 1, 1)
	var got []float64
	var want []float64
	hook := &lossHook{fn: func(output, target []float64, l float64) {
		got = append(got, l)
		want = append(want, loss.SumAbs{}.Forward(output, target))
	}}
	tr := &Trainer{Network: n, Loss: loss.SumAbs{}, Callbacks: []Callback{hook}}

	require.NoError(t, tr.Run(context.Background()))
	assert.Equal(t, want, got)
	assert.Len(t, got, 4)
}

func TestTrainerDefaultLossIsMSE(t *testing.T) {
	n := newXOR(t, 0.1, 1, 1)
	var mean float64
	var sum float64
	hook := &lossHook{
		fn: func(output, target []float64, l float64) {
			assert.InDelta(t, loss.MSE{}.Forward(output, target), l, 1e-15)
			sum += l
		},
		epoch: func(l float64) { mean = l },
	}

	require.NoError(t, (&Trainer{Network: n, Callbacks: []Callback{hook}}).Run(context.Background()))
	assert.InDelta(t, sum/4, mean, 1e-15)
}

type lossHook struct {
	BaseCallback
	fn    func(output, target []float64, l float64)
	epoch func(l float64)
}

func (h *lossHook) OnSampleEnd(epoch, sample int, output, target []float64, l float64, n *Network) {
	h.fn(output, target, l)
}

func (h *lossHook) OnEpochEnd(epoch int, l, learningRate float64, n *Network) {
	if h.epoch != nil {
		h.epoch(l)
	}
}
