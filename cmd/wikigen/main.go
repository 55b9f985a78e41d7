// Command wikigen is the wiki documentation search CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/docsmiths/wikigen/cmd/wikigen/cmd"
	wikierrors "github.com/docsmiths/wikigen/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var we *wikierrors.WikiError
		if errors.As(err, &we) && we.Suggestion != "" {
			fmt.Fprintln(os.Stderr, "Hint:", we.Suggestion)
		}
		os.Exit(1)
	}
}
