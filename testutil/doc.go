// Package testutil provides testing helpers for registry-based wiring.
//
// The helpers integrate with Go's testing package: registries are closed
// automatically when the test ends, and resolution failures surface as
// test fatals with the service spelled out.
//
// # Quick Start
//
//	func TestCheckout(t *testing.T) {
//	    reg := testutil.NewRegistry(t)
//	    root := reg.Root()
//
//	    resolver.Register(root, func(*resolver.Container, any) (*PaymentGateway, error) {
//	        return &PaymentGateway{}, nil
//	    })
//
//	    gw := testutil.RequireResolve[*PaymentGateway](t, root)
//	    // use gw; the registry closes when the test ends
//	}
//
// Negative paths are asserted with RequireNotResolved and RequireCode:
//
//	err := testutil.RequireNotResolved[*Missing](t, root)
//	testutil.RequireCode(t, err, errors.ErrCodeNotRegistered)
package testutil
