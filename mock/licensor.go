package mock

import (
	"context"

	"github.com/fwojciec/eldin"
)

var _ eldin.Licensor = (*Licensor)(nil)

// Licensor is a mock implementation of eldin.Licensor.
type Licensor struct {
	CheckFn func(ctx context.Context, req eldin.LicenseRequest) (eldin.LicenseDecision, error)
}

func (l *Licensor) Check(ctx context.Context, req eldin.LicenseRequest) (eldin.LicenseDecision, error) {
	return l.CheckFn(ctx, req)
}
