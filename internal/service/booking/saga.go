package booking

import (
	"context"
	"log"
)

// A saga is an ordered list of steps spanning systems that cannot share a
// transaction. Fatal steps abort the remainder on failure; non-fatal
// steps (notifications) only log. Step order is the atomicity guarantee:
// the remote flight leg runs before any local mutation, so a remote
// failure leaves local records untouched.
type sagaStep struct {
	name  string
	fatal bool
	run   func(ctx context.Context) error
}

func runSaga(ctx context.Context, steps []sagaStep) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.run(ctx); err != nil {
			if step.fatal {
				return err
			}
			log.Printf("WARNING: non-fatal saga step %s failed: %v", step.name, err)
		}
	}
	return nil
}
