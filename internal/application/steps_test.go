package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSteps(t *testing.T) {
	var order []string
	step := func(label string, err error) Step {
		return Step{
			Label: label,
			Run: func(ctx context.Context) error {
				order = append(order, label)
				return err
			},
		}
	}

	t.Run("all succeed", func(t *testing.T) {
		order = nil
		report := RunSteps(context.Background(), []Step{
			step("one", nil),
			step("two", nil),
		})

		assert.True(t, report.AllSucceeded())
		assert.Equal(t, 2, report.Attempted)
		assert.Equal(t, 2, report.Succeeded)
		assert.Equal(t, []string{"one", "two"}, order)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		order = nil
		report := RunSteps(context.Background(), []Step{
			step("one", nil),
			step("two", errors.New("boom")),
			step("three", nil),
		})

		assert.True(t, report.Failed)
		assert.Equal(t, 2, report.Attempted)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, []string{"one", "two"}, order, "step three never runs")

		require.Len(t, report.Results, 2)
		assert.True(t, report.Results[0].Success)
		assert.False(t, report.Results[1].Success)
		assert.Equal(t, "boom", report.Results[1].Error)
	})

	t.Run("no steps", func(t *testing.T) {
		report := RunSteps(context.Background(), nil)
		assert.True(t, report.AllSucceeded())
		assert.Zero(t, report.Attempted)
	})
}

func TestOptimisticMutation(t *testing.T) {
	t.Run("keeps the new value on success", func(t *testing.T) {
		value := false
		err := OptimisticMutation(context.Background(),
			func() bool { return value },
			func(v bool) { value = v },
			true,
			func(ctx context.Context) error { return nil },
		)
		require.NoError(t, err)
		assert.True(t, value)
	})

	t.Run("restores the snapshot on failure", func(t *testing.T) {
		value := "before"
		var seen string
		err := OptimisticMutation(context.Background(),
			func() string { return value },
			func(v string) { value = v },
			"after",
			func(ctx context.Context) error {
				seen = value
				return errors.New("boom")
			},
		)
		require.Error(t, err)
		assert.Equal(t, "after", seen, "the call observes the applied value")
		assert.Equal(t, "before", value)
	})
}
