// Package mocks provides shared mock implementations for tests.
//
// Mocks expose a function field per interface method plus default return
// values used when no function is set:
//
//	tokens := &mocks.MockTokenService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{Subject: "ops"}, nil
//	    },
//	}
package mocks
