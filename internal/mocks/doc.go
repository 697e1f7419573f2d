// Package mocks provides function-field fakes of the service interfaces for
// handler and middleware tests.
//
// Each mock calls its XxxFn field when set and otherwise returns the default
// fields:
//
//	svc := &mocks.MockScriptService{
//	    CreateScriptFn: func(ctx context.Context, userID uuid.UUID, in domain.ScriptInput) (uuid.UUID, error) {
//	        return scriptID, nil
//	    },
//	}
package mocks
