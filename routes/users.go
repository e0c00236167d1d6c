package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/songurtechnology/wafelinvest/chat"
	"github.com/songurtechnology/wafelinvest/controllers"
	"github.com/songurtechnology/wafelinvest/controllers/auth"
	"github.com/songurtechnology/wafelinvest/controllers/users"
	"github.com/songurtechnology/wafelinvest/middleware"
	"github.com/songurtechnology/wafelinvest/services"
)

// UsersRoutes registers the public and user-facing routes.
func UsersRoutes(api *mux.Router, ledger *services.Ledger, hub *chat.Hub) {
	// Rate limiter for register/login: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)

	investments := users.NewInvestmentController(ledger)
	chatCtl := controllers.NewChatController(hub)

	// body cap just above the 5 MB file limit to leave room for form overhead
	uploadBody := middleware.MaxBody(services.MaxProofSize + 1<<20)

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)

	// Public: packages and payment info
	api.Handle("/packages", http.HandlerFunc(controllers.PackageListHandler)).Methods(http.MethodGet)
	api.Handle("/packages/category/{category}", http.HandlerFunc(controllers.PackagesByCategoryHandler)).Methods(http.MethodGet)
	api.Handle("/packages/{id}", http.HandlerFunc(controllers.PackageDetailHandler)).Methods(http.MethodGet)
	api.Handle("/payment-info", http.HandlerFunc(controllers.PaymentInfoHandler)).Methods(http.MethodGet)

	// Investments
	api.Handle("/investments", middleware.RequireUser(http.HandlerFunc(investments.Create))).Methods(http.MethodPost)
	api.Handle("/investments", middleware.RequireUser(http.HandlerFunc(investments.List))).Methods(http.MethodGet)
	api.Handle("/investments/{id}/payment", uploadBody(middleware.RequireUser(http.HandlerFunc(investments.SubmitPayment)))).Methods(http.MethodPost)

	// Profile dashboard
	api.Handle("/profile", middleware.RequireUser(http.HandlerFunc(users.ProfileHandler))).Methods(http.MethodGet)

	// Conversation WebSocket: any authenticated actor, user or admin
	api.Handle("/chat/ws/{username}", middleware.RequireAuth(http.HandlerFunc(chatCtl.ServeWS))).Methods(http.MethodGet)
}
