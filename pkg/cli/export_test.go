package cli

import (
	"context"
	"io"
)

func RunWithWriter(ctx context.Context, w io.Writer, args []string) error {
	return newCommand(w).Run(ctx, args)
}

const UsageMessage = usageMessage
