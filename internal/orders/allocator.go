package orders

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Order numbers look like ORD-20250601-000123. The date segment reflects
// the submission day while the numeric suffix keeps counting across days,
// so the sequence never resets.
const (
	orderNumberPrefix = "ORD"
	suffixDigits      = 6
)

var orderNumberRe = regexp.MustCompile(`^ORD-(\d{8})-(\d{6})$`)

// NextOrderNumber derives the next order number from the most recently
// allocated one. A missing or malformed predecessor starts the sequence
// at one.
func NextOrderNumber(latest string, now time.Time) string {
	next := int64(1)
	if m := orderNumberRe.FindStringSubmatch(latest); m != nil {
		if suffix, err := strconv.ParseInt(m[2], 10, 64); err == nil {
			next = suffix + 1
		}
	}
	return fmt.Sprintf("%s-%s-%0*d", orderNumberPrefix, now.Format("20060102"), suffixDigits, next)
}
