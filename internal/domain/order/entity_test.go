// internal/domain/order/entity_test.go
package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber_Format(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	number := GenerateOrderNumber(at)

	assert.Regexp(t, regexp.MustCompile(`^ORD-20260314-\d{4}$`), number)
}

func TestGenerateOrderNumber_DateChangesPrefix(t *testing.T) {
	number := GenerateOrderNumber(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))

	assert.Regexp(t, `^ORD-20261201-\d{4}$`, number)
}

func TestGetFormattedTotal(t *testing.T) {
	o := &Order{FinalAmount: 123456}

	assert.InDelta(t, 1234.56, o.GetFormattedTotal(), 0.001)
}
