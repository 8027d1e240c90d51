package orkg

import (
	"io"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/logging"
)

var logger = &logging.Logger{PrefixText: "ORKG:", PrefixColor: logging.FgCyan, OmitContribution: true}

// SetLogger sets an optional destination for API request logs.
// When set to nil, logging is disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
