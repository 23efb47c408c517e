package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ErrAttrKey is the field under which Logger.Error records its error value.
const ErrAttrKey = "error"

// appendError records err, its cockroachdb/errors stacktrace and, when the
// error carries structured details, those details as a nested object.
func appendError(e *zerolog.Event, err error) {
	e.AnErr(ErrAttrKey, err)
	if stacktrace := extractStacktrace(err); stacktrace != "" {
		e.Str(StacktraceKey, stacktrace)
	}
	var marshaler zerolog.LogObjectMarshaler
	if errors.As(err, &marshaler) {
		e.Object("detail", marshaler)
	}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
