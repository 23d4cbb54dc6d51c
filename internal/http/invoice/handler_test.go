package invoice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	invoicehttp "github.com/atelierhq/atelier/internal/http/invoice"
	"github.com/atelierhq/atelier/internal/invoice"
)

func TestHandler_UpdateProject(t *testing.T) {
	id := uuid.New()
	projectID := uuid.New()

	current := func() *invoice.Invoice {
		return &invoice.Invoice{
			ID:         id,
			ProjectID:  &projectID,
			ClientName: "Acme Renovations",
			Total:      decimal.NewFromInt(1200),
			Status:     "draft",
			Date:       time.Now(),
		}
	}

	testCases := []struct {
		name      string
		body      string
		setupMock func(repo *invoice.MockRepository, refs *invoice.MockReferenceResolver)
	}{
		{
			name: "null project detaches the invoice",
			body: `{"projectId": null}`,
			setupMock: func(repo *invoice.MockRepository, refs *invoice.MockReferenceResolver) {
				repo.EXPECT().GetInvoice(gomock.Any(), id).Return(current(), nil)
				repo.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, got *invoice.Invoice) error {
						assert.Nil(t, got.ProjectID)
						return nil
					})
			},
		},
		{
			name: "absent project keeps the attachment",
			body: `{"status": "sent"}`,
			setupMock: func(repo *invoice.MockRepository, refs *invoice.MockReferenceResolver) {
				repo.EXPECT().GetInvoice(gomock.Any(), id).Return(current(), nil)
				refs.EXPECT().Project(gomock.Any(), projectID).Return(nil)
				repo.EXPECT().UpdateInvoice(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, got *invoice.Invoice) error {
						assert.Equal(t, &projectID, got.ProjectID)
						assert.Equal(t, "sent", got.Status)
						return nil
					})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			refs := invoice.NewMockReferenceResolver(ctrl)
			tc.setupMock(repo, refs)

			h := invoicehttp.NewHandler(invoice.NewService(repo, refs), nil, nil)
			router := chi.NewRouter()
			router.Route("/invoices", h.Routes)

			req := httptest.NewRequest(http.MethodPatch, "/invoices/"+id.String(), strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
