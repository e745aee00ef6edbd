package sel

const (
	Logo = ".brand-logo"

	LoginFormEmail    = `form[action="/login"] input[name="email"]`
	LoginFormPassword = `form[action="/login"] input[name="password"]`
	LoginFormSubmit   = `form[action="/login"] input[type="submit"]`

	RegisterFormName            = `form[action="/register"] input[name="name"]`
	RegisterFormEmail           = `form[action="/register"] input[name="email"]`
	RegisterFormPassword        = `form[action="/register"] input[name="password"]`
	RegisterFormPasswordConfirm = `form[action="/register"] input[name="password-confirm"]`
	RegisterFormSubmit          = `form[action="/register"] input[type="submit"]`

	StoreFormName   = `input[name="name"]`
	StoreFormSubmit = `input[type="submit"]`

	Flash = ".flash"
)
