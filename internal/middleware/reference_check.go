package middleware

import (
	"fmt"

	"github.com/keshon/wit/internal/command"
)

// WithReferenceCheck refuses to run cmd when HEAD or a branch points at a
// commit that is missing from the store. It must run inside WithRepository.
func WithReferenceCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if ctx.Repo == nil {
					return fmt.Errorf("%s: reference check needs an open repository", cmd.Name())
				}
				if err := ctx.Repo.VerifyReferences(); err != nil {
					return fmt.Errorf("repository verification failed: %w", err)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
