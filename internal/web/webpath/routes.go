package webpath

const (
	Home      = "/"
	Stores    = "/stores"
	StorePage = Stores + "/page/:page"
	AddStore  = "/add"
	EditStore = Stores + "/:id/edit"
	Store     = "/store/:slug"
	Tags      = "/tags"
	Tag       = Tags + "/:tag"
	Top       = "/top"
	Map       = "/map"
	Hearts    = "/hearts"

	Login    = "/login"
	Logout   = "/logout"
	Register = "/register"
	Account  = "/account"
	Forgot   = Account + "/forgot"
	Reset    = Account + "/reset/:token"

	AddReview = "/reviews/:id"

	Api        = "/api"
	ApiSearch  = Api + "/search"
	ApiSuggest = Api + "/suggest"
	ApiNear    = Api + "/stores/near"
	ApiHeart   = Api + "/stores/:id/heart"
)

func Path() map[string]string {
	return map[string]string{
		"Home":       Home,
		"Stores":     Stores,
		"AddStore":   AddStore,
		"Tags":       Tags,
		"Top":        Top,
		"Map":        Map,
		"Hearts":     Hearts,
		"Login":      Login,
		"Logout":     Logout,
		"Register":   Register,
		"Account":    Account,
		"Forgot":     Forgot,
		"ApiSearch":  ApiSearch,
		"ApiSuggest": ApiSuggest,
		"ApiNear":    ApiNear,
	}
}
