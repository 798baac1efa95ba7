package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs err with the logger carried by ctx.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	logger.Error("application error", "error", err)
}
