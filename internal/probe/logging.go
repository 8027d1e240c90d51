package probe

import (
	"io"

	"github.com/Webo1980/orkg-reproducibility-score-evaluation/internal/logging"
)

var logger = &logging.Logger{PrefixText: "Probe:", PrefixColor: logging.FgYellow, OmitContribution: true}

// SetLogger sets an optional destination for probe logs.
// When set to nil, probe logs are disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
