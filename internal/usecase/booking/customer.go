package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type CreateCustomerInput struct {
	SessionID string
	Customer  domain.CustomerInput
}

type CreateCustomerOutput struct {
	Customer domain.Customer `json:"customer"`
	Created  bool            `json:"is_new_customer"`
}

// CreateCustomer validates the customer's details and returns the existing
// provider customer with the same email, or a new one.
type CreateCustomer struct {
	provider domain.Provider
	audit    audit.Recorder
	opts     validators.CustomerOptions
}

func NewCreateCustomer(
	provider domain.Provider,
	audit audit.Recorder,
	opts validators.CustomerOptions,
) *CreateCustomer {
	return &CreateCustomer{
		provider: provider,
		audit:    audit,
		opts:     opts,
	}
}

func (uc *CreateCustomer) Execute(
	ctx context.Context,
	in CreateCustomerInput,
) (CreateCustomerOutput, error) {

	details, err := validators.ValidateCustomer(in.Customer, uc.opts)
	if err != nil {
		return CreateCustomerOutput{}, err
	}

	customer, created, err := uc.provider.FindOrCreateCustomer(ctx, details)
	if err != nil {
		return CreateCustomerOutput{}, err
	}

	uc.audit.Dispatch(audit.Event{
		SessionID: in.SessionID,
		Action:    audit.ActionCustomerResolved,
		Entity:    "customer",
		EntityID:  customer.ID,
		Metadata:  map[string]any{"created": created},
	})

	return CreateCustomerOutput{Customer: customer, Created: created}, nil
}
