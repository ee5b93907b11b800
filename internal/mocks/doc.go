// Package mocks provides centralized mock implementations for testing.
//
// Two styles live here. Store mocks embed testify's mock.Mock so tests can
// set expectations with On(...).Return(...) and verify them with
// AssertExpectations. Service mocks use function fields, falling back to
// default values when a field is nil.
//
// Usage:
//
//	import "github.com/phrazzld/tasks-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    mockJWTService := &mocks.MockJWTService{
//	        ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	            return &auth.Claims{UserID: userID, Username: "alice"}, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
