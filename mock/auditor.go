package mock

import (
	"context"

	"github.com/fwojciec/eldin"
)

var _ eldin.Auditor = (*Auditor)(nil)

// Auditor is a mock implementation of eldin.Auditor.
type Auditor struct {
	RecordAskFn    func(ctx context.Context, ev eldin.AskEvent)
	RecordAnswerFn func(ctx context.Context, ev eldin.AnswerEvent)
}

func (a *Auditor) RecordAsk(ctx context.Context, ev eldin.AskEvent) {
	a.RecordAskFn(ctx, ev)
}

func (a *Auditor) RecordAnswer(ctx context.Context, ev eldin.AnswerEvent) {
	a.RecordAnswerFn(ctx, ev)
}
