package invoice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atelierhq/atelier/internal/integrity"
	"github.com/atelierhq/atelier/internal/invoice"
)

func TestItemsRoundTrip(t *testing.T) {
	items := []invoice.Item{
		{Description: "Design consultation", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(150)},
		{Description: "Custom shelving", Quantity: decimal.NewFromInt(1), Price: decimal.RequireFromString("820.50")},
	}

	blob, err := invoice.EncodeItems(items)
	require.NoError(t, err)

	got := invoice.DecodeItems(blob)

	require.Len(t, got, 2)
	assert.Equal(t, "Design consultation", got[0].Description)
	assert.True(t, got[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, got[1].Price.Equal(decimal.RequireFromString("820.50")))
}

func TestEncodeItemsNil(t *testing.T) {
	blob, err := invoice.EncodeItems(nil)

	require.NoError(t, err)
	assert.Equal(t, "[]", blob)
}

func TestDecodeItemsBadBlob(t *testing.T) {
	assert.Empty(t, invoice.DecodeItems("not json"))
	assert.Empty(t, invoice.DecodeItems(""))
}

func TestService_Create(t *testing.T) {
	projectID := uuid.New()

	t.Run("DefaultsApplied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		refs := invoice.NewMockReferenceResolver(ctrl)

		repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)

		svc := invoice.NewService(repo, refs)
		inv, err := svc.Create(context.Background(), invoice.CreateParams{
			ClientName: "Acme",
			Total:      decimal.NewFromInt(500),
		})

		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDraft, inv.Status)
		assert.False(t, inv.Date.IsZero())
	})

	t.Run("UnresolvableProjectRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		refs := invoice.NewMockReferenceResolver(ctrl)

		refs.EXPECT().
			Project(gomock.Any(), projectID).
			Return(integrity.ErrInvalidReference)

		svc := invoice.NewService(repo, refs)
		inv, err := svc.Create(context.Background(), invoice.CreateParams{
			ClientName: "Acme",
			ProjectID:  &projectID,
		})

		assert.ErrorIs(t, err, integrity.ErrInvalidReference)
		assert.Nil(t, inv)
	})
}
