package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/songurtechnology/wafelinvest/controllers/admins"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/services"
)

// AdminRoutes registers the administrative routes, all behind the admin
// role check.
func AdminRoutes(api *mux.Router, ledger *services.Ledger) {
	ctl := admins.NewLedgerController(ledger)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.Handle("/investments", http.HandlerFunc(ctl.ListInvestments)).Methods(http.MethodGet)
	admin.Handle("/investments/{id}/status", http.HandlerFunc(ctl.SetStatus)).Methods(http.MethodPut)

	admin.Handle("/payments", http.HandlerFunc(ctl.ListPayments)).Methods(http.MethodGet)
	admin.Handle("/payments/{id}/approve", http.HandlerFunc(ctl.ApprovePayment)).Methods(http.MethodPut)

	admin.Handle("/packages", http.HandlerFunc(admins.CreatePackageHandler)).Methods(http.MethodPost)
	admin.Handle("/packages/{id}", http.HandlerFunc(admins.UpdatePackageHandler)).Methods(http.MethodPut)
	admin.Handle("/packages/{id}", http.HandlerFunc(admins.DeletePackageHandler)).Methods(http.MethodDelete)

	admin.Handle("/wallets", http.HandlerFunc(admins.CreateWalletHandler)).Methods(http.MethodPost)
	admin.Handle("/wallets/{id}", http.HandlerFunc(admins.UpdateWalletHandler)).Methods(http.MethodPut)
}
