package application

import "context"

// OptimisticMutation applies a value ahead of the persisting call and
// restores the prior snapshot when the call fails. Used for checklist
// toggles and the damage report resolved flag, where the UI flips state
// immediately.
func OptimisticMutation[T any](ctx context.Context, get func() T, set func(T), next T, call func(ctx context.Context) error) error {
	snapshot := get()
	set(next)
	if err := call(ctx); err != nil {
		set(snapshot)
		return err
	}
	return nil
}
