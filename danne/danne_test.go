package danne

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXOR(t *testing.T) {
	inputs := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	targets := [][]float64{{0}, {1}, {1}, {0}}

	n := New(0.1, 20000, WithInitializer(MersenneTwister(5)))
	require.NoError(t, n.SetTrainingInput(inputs))
	require.NoError(t, n.AddHiddenLayer(4, Sigmoid))
	require.NoError(t, n.SetTrainingOutput(targets))
	require.NoError(t, n.Train(context.Background()))
	assert.Equal(t, StateTrained, n.State())

	path := filepath.Join(t.TempDir(), "xor.gob")
	require.NoError(t, n.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)

	for i, in := range inputs {
		out, err := loaded.FeedForward(in)
		require.NoError(t, err)
		if targets[i][0] == 1 {
			assert.Greater(t, out[0], 0.5)
		} else {
			assert.Less(t, out[0], 0.5)
		}
	}
}

func TestErrorsAreShared(t *testing.T) {
	n := New(1, 1)
	err := n.AddHiddenLayer(4, Tanh)
	assert.True(t, errors.Is(err, ErrInvalidNetworkState))
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 1.0, c.LearningRate)
	assert.Equal(t, 2000, c.Epochs)
}
