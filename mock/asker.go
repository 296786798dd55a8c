package mock

import (
	"context"

	"github.com/fwojciec/eldin"
)

var _ eldin.Asker = (*Asker)(nil)

// Asker is a mock implementation of eldin.Asker.
type Asker struct {
	AskFn func(ctx context.Context, req eldin.AskRequest) (*eldin.AskResult, error)
}

func (a *Asker) Ask(ctx context.Context, req eldin.AskRequest) (*eldin.AskResult, error) {
	return a.AskFn(ctx, req)
}
