package collect

import (
	"io"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Collect:", PrefixColor: logging.FgGreen}

// SetLogger sets an optional destination for collection debug logs.
// When set to nil, collection logs are disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(contributionID string, format string, args ...any) {
	logger.Logf(contributionID, format, args...)
}
