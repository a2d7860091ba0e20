package printer

import (
	"strings"
	"time"
)

// receiptWidth is the character width of the printer in its small font.
const receiptWidth = 48

// mountain is where the printer lives. Fixed offset, no DST handling;
// the receipt timestamp is decorative.
var mountain = time.FixedZone("MST", -7*60*60)

func formatTimestamp(t time.Time) (date, clock string) {
	local := t.In(mountain)
	return local.Format("01/02/2006"), local.Format("03:04 PM MST")
}

func divider(ch byte) string {
	return strings.Repeat(string(ch), receiptWidth)
}

// shortID abbreviates a message id for the receipt header.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
