package transport

import "context"

// Submitter posts a payload to a link target.
type Submitter interface {
	Submit(ctx context.Context, URL string, payload any) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, URL string, payload any) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, URL string, payload any) error {
	return fn(ctx, URL, payload)
}
