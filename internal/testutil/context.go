package testutil

import (
	"context"

	"github.com/realstatepro/billing/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxOrganizationID, "org_test")
	ctx = context.WithValue(ctx, types.CtxUserID, "user_test")
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
