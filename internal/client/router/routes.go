package router

// Page names rendered by the terminal app.
const (
	PageLogin         = "login"
	PageRegister      = "register"
	PageResetPassword = "reset-password"
	PageReservations  = "reservations"
	PageVehicles      = "vehicles"
	PageDashboard     = "dashboard"
	PageProfileEdit   = "profile-edit"
)

// Route binds a path either to a page behind guards or to a static redirect.
type Route struct {
	Path       string
	Page       string
	Guards     []Guard
	RedirectTo string
}

// DefaultRoutes is the application's route table. Unknown paths fall back to
// the login page.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", RedirectTo: LoginPath},

		{Path: LoginPath, Page: PageLogin, Guards: []Guard{RequiresAnonymous}},
		{Path: "/auth/register", Page: PageRegister, Guards: []Guard{RequiresAnonymous}},
		{Path: "/auth/reset-password", Page: PageResetPassword, Guards: []Guard{RequiresAnonymous}},

		{Path: LandingPath, Page: PageReservations, Guards: []Guard{RequiresAuth}},
		{Path: "/vehicles", Page: PageVehicles, Guards: []Guard{RequiresAuth}},
		{Path: "/dashboard", Page: PageDashboard, Guards: []Guard{RequiresAuth}},
		{Path: "/profile/edit", Page: PageProfileEdit, Guards: []Guard{RequiresAuth}},
	}
}
