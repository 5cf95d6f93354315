package middleware

import (
	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/logger"
	"github.com/keshon/wit/internal/repo"
)

// WithRepository opens the repository enclosing the working directory and
// stores it in ctx.Repo. A repository whose config turns on debug logging
// raises the log level for the rest of the command.
func WithRepository() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				r, err := repo.Open(ctx.WorkDir, repo.WithConfirmer(ctx.Confirm))
				if err != nil {
					return err
				}
				if r.Config.Log.Debug {
					logger.Setup(ctx.Stderr, true)
				}
				ctx.Repo = r
				return cmd.Run(ctx)
			},
		}
	}
}
