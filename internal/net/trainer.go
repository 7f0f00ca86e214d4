package net

import (
	"context"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/danne/internal/loss"
	"github.com/FlavioCFOliveira/danne/internal/opt"
)

// Trainer drives a network through its epochs: every sample, in stored
// order, gets one forward and one backward pass. There is no shuffling and
// no early stopping; a full run is exactly epochs x samples cycles.
type Trainer struct {
	Network *Network

	// Scheduler supplies the learning rate per epoch. Nil keeps the
	// network's own rate.
	Scheduler opt.Scheduler

	// Loss is reported to callbacks. Nil means MSE.
	Loss loss.Loss

	Callbacks []Callback
}

// Run trains until the epoch count is reached or ctx is done. The context
// is checked before every sample; on cancellation the weights keep the
// updates made so far and ctx.Err() is returned wrapped.
func (t *Trainer) Run(ctx context.Context) error {
	n := t.Network
	if n == nil {
		return errors.Wrap(ErrInvalidNetworkState, "trainer has no network")
	}
	if err := n.canTrain(); err != nil {
		return err
	}
	lossFn := t.Loss
	if lossFn == nil {
		lossFn = loss.MSE{}
	}

	for _, cb := range t.Callbacks {
		cb.OnTrainBegin(n)
	}
	defer func() {
		for _, cb := range t.Callbacks {
			cb.OnTrainEnd(n)
		}
	}()

	for epoch := 0; epoch < n.epochs; epoch++ {
		lr := n.learningRate
		if t.Scheduler != nil {
			lr = t.Scheduler.Rate()
		}
		for _, cb := range t.Callbacks {
			cb.OnEpochBegin(epoch, n)
		}

		total := 0.0
		for i, input := range n.inputs {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "training stopped at epoch %d, sample %d", epoch, i)
			}

			output, err := n.forward(input)
			if err != nil {
				return errors.WithMessagef(err, "epoch %d, sample %d", epoch, i)
			}
			target := n.targetTransform.Apply(n.targets[i])
			n.backward(target, lr)
			n.state = StateTrained

			l := lossFn.Forward(output, target)
			total += l
			for _, cb := range t.Callbacks {
				cb.OnSampleEnd(epoch, i, output, target, l, n)
			}
		}

		epochLoss := total / float64(len(n.inputs))
		for _, cb := range t.Callbacks {
			cb.OnEpochEnd(epoch, epochLoss, lr, n)
		}
		if t.Scheduler != nil {
			t.Scheduler.Step(epochLoss)
		}
	}
	return nil
}
