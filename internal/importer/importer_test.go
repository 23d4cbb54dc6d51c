package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/importer"
	"github.com/atelierhq/atelier/internal/transaction"
)

func TestService_Parse(t *testing.T) {
	svc := importer.NewService()

	t.Run("ParsesRows", func(t *testing.T) {
		csv := strings.Join([]string{
			"date,type,amount,category,description",
			"2026-01-15,expense,120.50,Materials,Paint and brushes",
			"15/02/2026,income,1000,Invoice Payment,Deposit",
		}, "\n")

		params, err := svc.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, params, 2)

		assert.Equal(t, transaction.TypeExpense, params[0].Type)
		assert.True(t, params[0].Amount.Equal(decimal.NewFromFloat(120.50)))
		assert.Equal(t, "Materials", params[0].Category)
		assert.Equal(t, "Paint and brushes", params[0].Description)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), params[0].Date)

		assert.Equal(t, transaction.TypeIncome, params[1].Type)
		assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), params[1].Date)
	})

	t.Run("HeaderOrderDoesNotMatter", func(t *testing.T) {
		csv := strings.Join([]string{
			"Amount,Description,Type,Date",
			"55,Rental,expense,2026-03-01",
		}, "\n")

		params, err := svc.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, params, 1)
		assert.Equal(t, "Rental", params[0].Description)
		assert.Empty(t, params[0].Category)
	})

	t.Run("MissingRequiredColumn", func(t *testing.T) {
		csv := "date,amount\n2026-01-01,10"

		_, err := svc.Parse(strings.NewReader(csv))

		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing column "type"`)
	})

	t.Run("BadRowReportsLineNumber", func(t *testing.T) {
		csv := strings.Join([]string{
			"date,type,amount",
			"2026-01-01,expense,10",
			"not-a-date,expense,10",
		}, "\n")

		_, err := svc.Parse(strings.NewReader(csv))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
	})

	t.Run("InvalidType", func(t *testing.T) {
		csv := "date,type,amount\n2026-01-01,transfer,10"

		_, err := svc.Parse(strings.NewReader(csv))

		assert.ErrorIs(t, err, transaction.ErrInvalidType)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		csv := "date,type,amount\n2026-01-01,expense,-10"

		_, err := svc.Parse(strings.NewReader(csv))

		assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		params, err := svc.Parse(strings.NewReader(""))

		assert.NoError(t, err)
		assert.Empty(t, params)
	})

	t.Run("UTF8BOMStripped", func(t *testing.T) {
		csv := "\xEF\xBB\xBFdate,type,amount\n2026-01-01,income,5"

		params, err := svc.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, params, 1)
		assert.Equal(t, transaction.TypeIncome, params[0].Type)
	})
}
