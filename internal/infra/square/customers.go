package square

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// FindOrCreateCustomer looks the customer up by exact email and creates
// one when none exists. A failed lookup falls through to creation.
func (c *Client) FindOrCreateCustomer(
	ctx context.Context,
	in booking.CustomerInput,
) (booking.Customer, bool, error) {

	email := strings.TrimSpace(in.Email)

	var search searchCustomersRequest
	search.Query.Filter.EmailAddress.Exact = email
	search.Limit = 1

	var found searchCustomersResponse
	err := c.do(ctx, "search customers", http.MethodPost, "/v2/customers/search", nil, search, &found)
	switch {
	case err != nil:
		c.logger.Warn("customer search failed, creating", "err", err)
	case len(found.Customers) > 0 && found.Customers[0].ID != "":
		return customerFromWire(found.Customers[0]), false, nil
	}

	req := createCustomerRequest{
		IdempotencyKey: c.newKey(),
		GivenName:      strings.TrimSpace(in.GivenName),
		FamilyName:     strings.TrimSpace(in.FamilyName),
		EmailAddress:   email,
		PhoneNumber:    strings.TrimSpace(in.Phone),
	}

	var created customerResponse
	if err := c.do(ctx, "create customer", http.MethodPost, "/v2/customers", nil, req, &created); err != nil {
		return booking.Customer{}, false, err
	}
	if created.Customer == nil || created.Customer.ID == "" {
		return booking.Customer{}, false, &booking.ProviderError{
			Op:  "create customer",
			Err: errors.New("response carried no customer"),
		}
	}

	return customerFromWire(*created.Customer), true, nil
}
