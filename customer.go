package apacai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// NewCustomer creates an empty customer object.
func NewCustomer(options ...Option) (*Customer, error) {
	r, err := Construct(KindCustomer, "", options...)
	if err != nil {
		return nil, err
	}
	return r.(*Customer), nil
}

// CustomerURL returns the path of a customer scoped endpoint.
func CustomerURL(customer, endpoint string) string {
	return fmt.Sprintf("/customer/%s/%s", url.PathEscape(customer), endpoint)
}

// Create posts params to the customer endpoint.
func (c *Customer) Create(ctx context.Context, customer, endpoint string, params any) (Outcome, error) {
	return c.Issue(ctx, Request{Method: http.MethodPost, Path: CustomerURL(customer, endpoint), Params: params})
}

// CreateAsync posts params to the customer endpoint in the background.
func (c *Customer) CreateAsync(ctx context.Context, customer, endpoint string, params any) *Future[Outcome] {
	return c.IssueAsync(ctx, Request{Method: http.MethodPost, Path: CustomerURL(customer, endpoint), Params: params})
}

// CreateCustomer posts params to /customer/{customer}/{endpoint} with a fresh customer object.
func CreateCustomer(ctx context.Context, customer, endpoint string, params any, options ...Option) (Outcome, error) {
	c, err := NewCustomer(options...)
	if err != nil {
		return Outcome{}, err
	}
	return c.Create(ctx, customer, endpoint, params)
}

// CreateCustomerAsync is the background version of CreateCustomer.
func CreateCustomerAsync(ctx context.Context, customer, endpoint string, params any, options ...Option) *Future[Outcome] {
	c, err := NewCustomer(options...)
	if err != nil {
		f := NewFuture[Outcome]()
		f.Error(err)
		return f
	}
	return c.CreateAsync(ctx, customer, endpoint, params)
}
