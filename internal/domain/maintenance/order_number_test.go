package maintenance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Flota-api/internal/domain/maintenance"
)

func TestFormatOrderNumber_PaddingTresDigitos(t *testing.T) {
	assert.Equal(t, "OM-2026-001", maintenance.FormatOrderNumber(2026, 1))
	assert.Equal(t, "OM-2026-042", maintenance.FormatOrderNumber(2026, 42))
	assert.Equal(t, "OM-2026-999", maintenance.FormatOrderNumber(2026, 999))
}

// Pasados 999 consecutivos el número simplemente se alarga; no hay tope.
func TestFormatOrderNumber_DesbordaElPadding(t *testing.T) {
	assert.Equal(t, "OM-2026-1000", maintenance.FormatOrderNumber(2026, 1000))
}
