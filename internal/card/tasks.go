package card

import (
	"context"
	"fmt"
)

// task is one step of a transition.
type task struct {
	name string
	run  func(ctx context.Context) error
}

// runTasks executes tasks one at a time, checking ctx before each step.
func runTasks(ctx context.Context, tasks []task) error {
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("before %s: %w", t.name, err)
		}
		if err := t.run(ctx); err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
	}
	return nil
}
