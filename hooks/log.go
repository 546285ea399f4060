package hooks

import (
	"github.com/rs/zerolog"

	"github.com/charmingruby/decor/decor"
	"github.com/charmingruby/decor/outcome"
)

// Log emits a debug event when a call starts and an info event when it ends,
// or an error event when it returns an error. Events carry the qualified
// function name, the arguments, the result and the elapsed time.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	logged := decor.Chain[string, string](greet, hooks.Log[string, string](logger))
func Log[A any, R any](logger zerolog.Logger) decor.Decorator[A, R] {
	return decor.Decorate(decor.Hooks[A, R]{
		Before: func(call decor.Call[A]) {
			logger.Debug().
				Str("func", call.Meta.Qualified()).
				Interface("args", call.Args).
				Msg("call started")
		},
		After: func(call decor.Call[A], out outcome.Outcome[R]) {
			if err := out.Err(); err != nil {
				logger.Error().
					Err(err).
					Str("func", call.Meta.Qualified()).
					Dur("elapsed", out.Elapsed()).
					Msg("call failed")
				return
			}
			logger.Info().
				Str("func", call.Meta.Qualified()).
				Interface("result", out.Value()).
				Dur("elapsed", out.Elapsed()).
				Msg("call finished")
		},
	})
}
