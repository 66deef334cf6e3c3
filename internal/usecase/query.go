package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

// QuerySnapshot evaluates JSONPath expressions against the stored library document.
type QuerySnapshot struct {
	q ports.SnapshotQuery
}

func NewQuerySnapshot(q ports.SnapshotQuery) *QuerySnapshot {
	return &QuerySnapshot{q: q}
}

func (uc *QuerySnapshot) Execute(ctx context.Context, expr string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "$") {
		return nil, &domain.OpError{
			Op:   "query.execute",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("expression must start with '$': %w", domain.ErrInvalidInput),
		}
	}
	return uc.q.Query(expr)
}
