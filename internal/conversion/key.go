package conversion

import (
	"fmt"
	"strings"
	"time"
)

// DedupeKey prefers the lead id; without one it falls back to the page and form
// that produced the submission.
func DedupeKey(leadID, path, formSource string) string {
	if id := strings.TrimSpace(leadID); id != "" {
		return "lead:" + id
	}
	return "form:" + strings.TrimSpace(path) + "|" + strings.TrimSpace(formSource)
}

// TransactionID tags the ads conversion. Without a lead id it is RFQ-<unix millis>.
func TransactionID(leadID string, now time.Time) string {
	if id := strings.TrimSpace(leadID); id != "" {
		return id
	}
	return fmt.Sprintf("RFQ-%d", now.UnixMilli())
}
