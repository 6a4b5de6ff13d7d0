// Package sentryhelper provides utilities for Sentry transaction and
// scope management. It ensures breadcrumbs and context stay isolated
// per page operation.
package sentryhelper

import (
	"context"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
)

// contextKey is used to store the cloned hub in context
type contextKey string

const hubContextKey contextKey = "sentry_hub"

// StartPageTransaction creates a new transaction with a cloned hub for
// one page operation (plan, click, reveal). The cloned hub keeps
// breadcrumbs and scope isolated to this operation only.
func StartPageTransaction(ctx context.Context, operation string, pageID string) (context.Context, *sentry.Span) {
	hub := sentry.CurrentHub().Clone()
	ctx = context.WithValue(ctx, hubContextKey, hub)

	transactionName := fmt.Sprintf("page.%s", operation)
	transaction := sentry.StartTransaction(ctx, transactionName,
		sentry.WithOpName("page."+operation),
		sentry.WithTransactionSource(sentry.SourceRoute),
	)

	transaction.SetTag("operation", operation)
	transaction.SetTag("page_id", pageID)

	hub.Scope().SetSpan(transaction)

	return transaction.Context(), transaction
}

// HubFromContext retrieves the cloned hub from context, falling back
// to CurrentHub when none was attached.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub, ok := ctx.Value(hubContextKey).(*sentry.Hub); ok && hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// CaptureException captures an exception on the hub in context.
func CaptureException(ctx context.Context, err error) *sentry.EventID {
	return HubFromContext(ctx).CaptureException(err)
}

// AddBreadcrumb adds a breadcrumb to the hub in context.
func AddBreadcrumb(ctx context.Context, breadcrumb *sentry.Breadcrumb) {
	HubFromContext(ctx).AddBreadcrumb(breadcrumb, nil)
}
