package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func TestGenerateStockReport(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	by := "root"
	products := []*entity.Product{
		{ID: 1, Name: "Flour", Quantity: decimal.NewFromInt(10), Unit: "kg", Active: true, LastModifiedBy: &by, LastModifiedAt: &at},
		{ID: 2, Name: "Sugar", Quantity: decimal.RequireFromString("2.5"), Unit: "kg", Active: true},
	}

	out, err := NewMarotoStockReport("Reporte de existencias").GenerateStockReport(context.Background(), products, by, at)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestLastChange(t *testing.T) {
	assert.Equal(t, "N/A", lastChange(&entity.Product{}))

	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	by := "bob"
	assert.Equal(t, "bob · 01/03/2026 10:30", lastChange(&entity.Product{LastModifiedBy: &by, LastModifiedAt: &at}))
}
