package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/finance"
	"github.com/atelierhq/atelier/internal/project"
)

type projectResponse struct {
	ID          uuid.UUID       `json:"id"`
	CustomID    string          `json:"customId"`
	Name        string          `json:"name"`
	Client      string          `json:"client"`
	ClientEmail string          `json:"clientEmail,omitempty"`
	ClientPhone string          `json:"clientPhone,omitempty"`
	Description string          `json:"description,omitempty"`
	Income      decimal.Decimal `json:"income"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`

	// Derived from the ledger on every read.
	ActualIncome       decimal.Decimal `json:"actualIncome"`
	ActualExpenses     decimal.Decimal `json:"actualExpenses"`
	RemainingBudget    decimal.Decimal `json:"remainingBudget"`
	TaskCount          int             `json:"taskCount"`
	CompletedTaskCount int             `json:"completedTaskCount"`
	Progress           int             `json:"progress"`
}

func toResponse(p *project.Project, summary finance.Summary) projectResponse {
	return projectResponse{
		ID:          p.ID,
		CustomID:    p.CustomID,
		Name:        p.Name,
		Client:      p.Client,
		ClientEmail: p.ClientEmail,
		ClientPhone: p.ClientPhone,
		Description: p.Description,
		Income:      p.Income,
		StartDate:   p.StartDate,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,

		ActualIncome:       summary.ActualIncome,
		ActualExpenses:     summary.ActualExpenses,
		RemainingBudget:    summary.RemainingBudget,
		TaskCount:          summary.TaskCount,
		CompletedTaskCount: summary.CompletedTaskCount,
		Progress:           summary.Progress,
	}
}
