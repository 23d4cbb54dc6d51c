package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/transaction"
)

type createTransactionRequest struct {
	Type        transaction.Type `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        *time.Time       `json:"date,omitempty"`
	ProjectID   *uuid.UUID       `json:"projectId,omitempty"`
	EmployeeID  *uuid.UUID       `json:"employeeId,omitempty"`
	InvoiceID   *uuid.UUID       `json:"invoiceId,omitempty"`
}

func (req createTransactionRequest) toParams() transaction.CreateParams {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	return transaction.CreateParams{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		ProjectID:   req.ProjectID,
		EmployeeID:  req.EmployeeID,
		InvoiceID:   req.InvoiceID,
	}
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Reference   string           `json:"reference"`
	Type        transaction.Type `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    string           `json:"category,omitempty"`
	Description string           `json:"description,omitempty"`
	Date        time.Time        `json:"date"`
	ProjectID   *uuid.UUID       `json:"projectId,omitempty"`
	EmployeeID  *uuid.UUID       `json:"employeeId,omitempty"`
	InvoiceID   *uuid.UUID       `json:"invoiceId,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Reference:   tx.Reference,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date,
		ProjectID:   tx.ProjectID,
		EmployeeID:  tx.EmployeeID,
		InvoiceID:   tx.InvoiceID,
		CreatedAt:   tx.CreatedAt,
	}
}
