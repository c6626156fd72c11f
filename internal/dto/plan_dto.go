package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlanResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	BillingCycle string    `json:"billing_cycle"`
	FreeMonths   int       `json:"free_months"`
	IsActive     bool      `json:"is_active"`
	Features     []string  `json:"features,omitempty"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreatePlanRequest struct {
	Name         string   `json:"name" validate:"required"`
	Slug         string   `json:"slug" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Price        int64    `json:"price" validate:"gte=0"`
	BillingCycle string   `json:"billing_cycle" validate:"required,oneof=monthly semesterly annually"`
	FreeMonths   int      `json:"free_months" validate:"gte=0"`
	Features     []string `json:"features,omitempty"`
	SortOrder    int      `json:"sort_order,omitempty"`
}

type UpdatePlanRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
