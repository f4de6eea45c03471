package listview

import "context"

// Effect is one gateway call prepared on the event loop. It captures a
// snapshot of its parameters and never reads or writes controller state, so
// it may run on any goroutine. Its Outcome must be handed back to
// Controller.Apply on the event loop.
type Effect func(ctx context.Context) Outcome

// Outcome is the result of an Effect waiting to be applied.
type Outcome interface {
	apply(c *Controller) (Effect, error)
}

// Reconcile runs on the event loop after a successful reload replaced the rows.
type Reconcile func(c *Controller)

// Then chains reconcile steps in order.
func Then(steps ...Reconcile) Reconcile {
	return func(c *Controller) {
		for _, step := range steps {
			if step != nil {
				step(c)
			}
		}
	}
}

// Apply folds an outcome into the controller state. The returned effect, if
// any, is the follow-up call the outcome requires (a reload after a
// successful mutation). Errors are transport failures.
func (c *Controller) Apply(o Outcome) (Effect, error) {
	if o == nil {
		return nil, nil
	}
	return o.apply(c)
}

// Run executes eff and every follow-up effect synchronously, applying each
// outcome in turn. It stops at the first error.
func (c *Controller) Run(ctx context.Context, eff Effect) error {
	for eff != nil {
		next, err := c.Apply(eff(ctx))
		if err != nil {
			return err
		}
		eff = next
	}
	return nil
}
