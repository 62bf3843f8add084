/*
Package std wires the default components together: the message router
with all splitter handlers and the standard decorator chain around it.
Use it as the starting point of an application and replace pieces with
custom implementations as the project grows.
*/
package std

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/x"
	"github.com/iov-one/paysplit/x/splitter"
	"github.com/iov-one/paysplit/x/utils"
)

// Chain returns the standard decorator chain: panic recovery and a
// savepoint, so a rejected operation leaves no observable mutation.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Router returns the default router, dispatching to the splitter
// handlers.
func Router(auth x.Authenticator, ctrl splitter.CashController, market splitter.Marketplace) *app.Router {
	r := app.NewRouter()
	splitter.RegisterRoutes(r, auth, ctrl, market)
	return r
}

// Stack wires the standard router with the standard decorator chain.
func Stack(auth x.Authenticator, ctrl splitter.CashController, market splitter.Marketplace) paysplit.Handler {
	return Chain().WithHandler(Router(auth, ctrl, market))
}
