// Where: internal/infra/logging/logging.go
// What: Diagnostic logger construction.
// Why: Keep debug output on stderr and silent unless requested.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/sebasmonia/dotnet.el/internal/infra/interaction"
)

// New returns a console logger writing to w at debug level, or a disabled
// logger when debug is false.
func New(debug bool, w io.Writer) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	if w == nil {
		w = os.Stderr
	}
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	writer.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && interaction.IsTerminal(f)
}
