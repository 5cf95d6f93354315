package middleware

import (
	"github.com/rs/zerolog/log"

	"github.com/keshon/wit/internal/command"
)

// WithDebugArgsPrint logs the command name and its arguments at debug level.
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				log.Debug().Str("cmd", cmd.Name()).Strs("args", ctx.Args).Msg("run")
				return cmd.Run(ctx)
			},
		}
	}
}
