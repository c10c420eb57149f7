package domain

import (
	"encoding/json"
	"testing"

	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSingleProduct(t *testing.T) {
	report, err := Aggregate([]productdomain.Product{
		{Name: "Beer", Category: "Domestic", Singles: 3, Cases: 2, Pack: 24},
	})
	require.NoError(t, err)

	assert.Equal(t, 51, report.GrandTotal)
	assert.Equal(t, []Row{{Name: "Beer", Category: "Domestic", Singles: 3, Cases: 2, Pack: 24, Total: 51}}, report.Rows)
}

func TestAggregateIncludesCompletedProducts(t *testing.T) {
	products := []productdomain.Product{
		{Name: "A", Singles: 1, Cases: 1, Pack: 6},
		{Name: "B", Singles: 4, Cases: 0, Pack: 24, Completed: true},
		{Name: "C", Singles: 0, Cases: 3, Pack: 12, Completed: true},
	}

	report, err := Aggregate(products)
	require.NoError(t, err)

	want := 0
	for _, p := range products {
		want += p.Singles + p.Cases*p.Pack
	}
	assert.Equal(t, want, report.GrandTotal)
	assert.Equal(t, 7+4+36, report.GrandTotal)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "B", report.Rows[1].Name)
}

func TestAggregateEmptyInventory(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrEmptyInventory)

	_, err = Aggregate([]productdomain.Product{})
	assert.ErrorIs(t, err, ErrEmptyInventory)
}

func TestReportJSONOmitsCategory(t *testing.T) {
	report, err := Aggregate([]productdomain.Product{{Name: "Beer", Category: "Domestic", Singles: 1, Pack: 24}})
	require.NoError(t, err)

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"name":"Beer","singles":1,"cases":0,"pack":24,"total":1}],"grandTotal":1}`, string(raw))
}
