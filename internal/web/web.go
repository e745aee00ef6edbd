package web

import (
	"database/sql"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/google/uuid"

	embedded "github.com/goserg/storeserver"
	authservice "github.com/goserg/storeserver/auth/service"
	"github.com/goserg/storeserver/auth/users"
	"github.com/goserg/storeserver/internal/config"
	"github.com/goserg/storeserver/internal/domain"
	"github.com/goserg/storeserver/internal/service"
	"github.com/goserg/storeserver/internal/web/webpath"
)

type Server struct {
	auth         *authservice.Service
	storeService *service.StoreService
	app          *fiber.App
	cfg          config.Server
}

func New(ss *service.StoreService, cfg config.Server, authService *authservice.Service) (*Server, error) {
	server := Server{
		storeService: ss,
		auth:         authService,
		cfg:          cfg,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("sub", func(a, b int) int { return a - b })

	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// resolve the session cookie for every request; handlers that need a
	// user check for it themselves
	app.Use(func(c *fiber.Ctx) error {
		tokenCookie := c.Cookies("token")
		if tokenCookie != "" {
			user, err := authService.Auth(c.Context(), tokenCookie)
			if err == nil {
				c.Context().SetUserValue(userKey, user)
			}
		}
		return c.Next()
	})

	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.Stores)
	})
	app.Get(webpath.Stores, server.handleStores)
	app.Get(webpath.StorePage, server.handleStores)
	app.Get(webpath.AddStore, server.handleAddStoreGet)
	app.Post(webpath.AddStore, server.handleAddStorePost)
	app.Get(webpath.EditStore, server.handleEditStoreGet)
	app.Post(webpath.EditStore, server.handleEditStorePost)
	app.Get(webpath.Store, server.handleStore)
	app.Get(webpath.Tags, server.handleTags)
	app.Get(webpath.Tag, server.handleTags)
	app.Get(webpath.Top, server.handleTop)
	app.Get(webpath.Map, server.handleMap)
	app.Get(webpath.Hearts, server.handleHearts)
	app.Post(webpath.AddReview, server.handleAddReview)

	app.Get(webpath.Login, server.handleLoginGet)
	app.Post(webpath.Login, server.handleLoginPost)
	app.Get(webpath.Logout, server.handleLogout)
	app.Get(webpath.Register, server.handleRegisterGet)
	app.Post(webpath.Register, server.handleRegisterPost)
	app.Get(webpath.Account, server.handleAccountGet)
	app.Post(webpath.Account, server.handleAccountPost)
	app.Get(webpath.Forgot, server.handleForgotGet)
	app.Post(webpath.Forgot, server.handleForgotPost)
	app.Get(webpath.Reset, server.handleResetGet)
	app.Post(webpath.Reset, server.handleResetPost)

	app.Get(webpath.ApiSearch, server.handleSearch)
	app.Get(webpath.ApiSuggest, server.handleSuggest)
	app.Get(webpath.ApiNear, server.handleNear)
	app.Post(webpath.ApiHeart, server.handleHeart)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

const userKey = "user"

func currentUser(ctx *fiber.Ctx) (users.User, bool) {
	user, ok := ctx.Context().UserValue(userKey).(users.User)
	return user, ok
}

func (s *Server) handleStores(ctx *fiber.Ctx) error {
	user, _ := currentUser(ctx)
	pageNum, err := strconv.Atoi(ctx.Params("page", "1"))
	if err != nil {
		pageNum = 1
	}
	page, err := s.storeService.ListPage(ctx.Context(), pageNum)
	if err != nil {
		return err
	}
	if page.Page != pageNum {
		setFlash(ctx, "Hey! You asked for page "+strconv.Itoa(pageNum)+". That doesn't exist. So I put you on page "+strconv.Itoa(page.Page))
		return ctx.Redirect(webpath.Stores + "/page/" + strconv.Itoa(page.Page))
	}
	return ctx.Render("stores", newData("Stores").
		WithUser(user).
		WithFlash(ctx).
		With("Page", page),
		"layouts/main")
}

func (s *Server) handleAddStoreGet(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		setFlash(ctx, "You must be logged in to add a store")
		return ctx.Redirect(webpath.Login)
	}
	return ctx.Render("editStore", newData("Add Store").
		WithUser(user).
		With("Store", domain.Store{}),
		"layouts/main")
}

func (s *Server) handleAddStorePost(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	store, err := parseStoreForm(ctx)
	if err != nil {
		return ctx.Render("editStore", newData("Add Store").
			WithUser(user).
			WithErrors(err).
			With("Store", store),
			"layouts/main")
	}
	store.AuthorID = user.ID
	created, err := s.storeService.CreateStore(ctx.Context(), store)
	if err != nil {
		return err
	}
	setFlash(ctx, "Successfully created "+created.Name)
	return ctx.Redirect("/store/" + created.Slug)
}

func (s *Server) handleEditStoreGet(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		setFlash(ctx, "You must be logged in to edit a store")
		return ctx.Redirect(webpath.Login)
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	store, err := s.storeService.GetStore(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fiber.ErrNotFound
		}
		return err
	}
	if store.AuthorID != user.ID {
		return fiber.ErrForbidden
	}
	return ctx.Render("editStore", newData("Edit "+store.Name).
		WithUser(user).
		With("Store", store),
		"layouts/main")
}

func (s *Server) handleEditStorePost(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	store, parseErr := parseStoreForm(ctx)
	store.ID = id
	if parseErr != nil {
		return ctx.Render("editStore", newData("Edit Store").
			WithUser(user).
			WithErrors(parseErr).
			With("Store", store),
			"layouts/main")
	}
	updated, err := s.storeService.UpdateStore(ctx.Context(), store, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return fiber.ErrNotFound
		case errors.Is(err, service.ErrNotOwner):
			return fiber.ErrForbidden
		}
		return err
	}
	setFlash(ctx, "Successfully updated "+updated.Name)
	return ctx.Redirect("/store/" + updated.Slug)
}

func (s *Server) handleStore(ctx *fiber.Ctx) error {
	user, _ := currentUser(ctx)
	store, err := s.storeService.GetStoreBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fiber.ErrNotFound
		}
		return err
	}
	reviews, err := s.storeService.StoreReviews(ctx.Context(), store.ID)
	if err != nil {
		return err
	}
	return ctx.Render("store", newData(store.Name).
		WithUser(user).
		WithFlash(ctx).
		With("Store", store).
		With("Reviews", reviews),
		"layouts/main")
}

func (s *Server) handleTags(ctx *fiber.Ctx) error {
	user, _ := currentUser(ctx)
	tag := ctx.Params("tag", "")
	tags, err := s.storeService.Tags(ctx.Context())
	if err != nil {
		return err
	}
	d := newData("Tags").
		WithUser(user).
		With("Tags", tags).
		With("ActiveTag", tag)
	if tag != "" {
		stores, err := s.storeService.StoresByTag(ctx.Context(), tag)
		if err != nil {
			return err
		}
		d = d.With("Stores", stores)
	}
	return ctx.Render("tags", d, "layouts/main")
}

func (s *Server) handleTop(ctx *fiber.Ctx) error {
	user, _ := currentUser(ctx)
	stores, err := s.storeService.TopStores(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("top", newData("Top Stores").
		WithUser(user).
		With("Stores", stores),
		"layouts/main")
}

func (s *Server) handleMap(ctx *fiber.Ctx) error {
	user, _ := currentUser(ctx)
	return ctx.Render("map", newData("Map").
		WithUser(user),
		"layouts/main")
}

func (s *Server) handleHearts(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		setFlash(ctx, "You must be logged in to see your hearted stores")
		return ctx.Redirect(webpath.Login)
	}
	stores, err := s.storeService.HeartedStores(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	return ctx.Render("stores", newData("Hearted Stores").
		WithUser(user).
		With("Page", domain.StorePage{Stores: stores, Page: 1, Pages: 1}),
		"layouts/main")
}

func (s *Server) handleAddReview(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	storeID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	req, err := parseReviewRequest(ctx)
	if err != nil {
		store, getErr := s.storeService.GetStore(ctx.Context(), storeID)
		if getErr != nil {
			return getErr
		}
		reviews, getErr := s.storeService.StoreReviews(ctx.Context(), storeID)
		if getErr != nil {
			return getErr
		}
		return ctx.Render("store", newData(store.Name).
			WithUser(user).
			WithErrors(err).
			With("Store", store).
			With("Reviews", reviews),
			"layouts/main")
	}
	review, err := s.storeService.AddReview(ctx.Context(), domain.Review{
		StoreID:    storeID,
		AuthorID:   user.ID,
		AuthorName: user.Name,
		Text:       req.text,
		Rating:     req.rating,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fiber.ErrNotFound
		}
		return err
	}
	store, err := s.storeService.GetStore(ctx.Context(), review.StoreID)
	if err != nil {
		return err
	}
	setFlash(ctx, "Review saved!")
	return ctx.Redirect("/store/" + store.Slug)
}

func (s *Server) handleLoginGet(ctx *fiber.Ctx) error {
	return ctx.Render("login", newData("Login").WithFlash(ctx), "layouts/main")
}

func (s *Server) handleLoginPost(ctx *fiber.Ctx) error {
	req, err := parseLoginRequest(ctx)
	if err != nil {
		return ctx.Render("login", newData("Login").WithErrors(err), "layouts/main")
	}
	_, cookie, err := s.auth.Login(ctx.Context(), req.email, req.password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			return ctx.Render("login", newData("Login").WithErrors(err), "layouts/main")
		}
		return err
	}
	ctx.Cookie(cookie)
	setFlash(ctx, "You are now logged in!")
	return ctx.Redirect(webpath.Stores)
}

func (s *Server) handleLogout(ctx *fiber.Ctx) error {
	if err := s.auth.Logout(ctx.Context(), ctx.Cookies("token")); err != nil {
		return err
	}
	ctx.ClearCookie("token")
	setFlash(ctx, "You are now logged out!")
	return ctx.Redirect(webpath.Stores)
}

func (s *Server) handleRegisterGet(ctx *fiber.Ctx) error {
	return ctx.Render("register", newData("Register"), "layouts/main")
}

func (s *Server) handleRegisterPost(ctx *fiber.Ctx) error {
	req := parseRegisterRequest(ctx)
	_, cookie, err := s.auth.SignUp(ctx.Context(), req.email, req.name, req.password, req.passwordConfirm)
	if err != nil {
		return ctx.Render("register", newData("Register").WithErrors(err), "layouts/main")
	}
	ctx.Cookie(cookie)
	setFlash(ctx, "Welcome!")
	return ctx.Redirect(webpath.Stores)
}

func (s *Server) handleAccountGet(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		setFlash(ctx, "You must be logged in to see your account")
		return ctx.Redirect(webpath.Login)
	}
	return ctx.Render("account", newData("Your Account").
		WithUser(user).
		WithFlash(ctx),
		"layouts/main")
}

func (s *Server) handleAccountPost(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	name := ctx.FormValue("name", "")
	email := ctx.FormValue("email", "")
	if err := s.auth.UpdateAccount(ctx.Context(), user.ID, name, email); err != nil {
		return ctx.Render("account", newData("Your Account").
			WithUser(user).
			WithErrors(err),
			"layouts/main")
	}
	setFlash(ctx, "Updated the profile!")
	return ctx.Redirect(webpath.Account)
}

func (s *Server) handleForgotGet(ctx *fiber.Ctx) error {
	return ctx.Render("forgot", newData("Forgot Password").WithFlash(ctx), "layouts/main")
}

func (s *Server) handleForgotPost(ctx *fiber.Ctx) error {
	email := ctx.FormValue("email", "")
	err := s.auth.Forgot(ctx.Context(), email, string(ctx.Request().Host()))
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrNoAccount),
			errors.Is(err, authservice.ErrMailDelivery):
			return ctx.Render("forgot", newData("Forgot Password").WithErrors(err), "layouts/main")
		}
		return err
	}
	setFlash(ctx, "You have been emailed a password reset link.")
	return ctx.Redirect(webpath.Login)
}

func (s *Server) handleResetGet(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	_, err := s.auth.ValidateResetToken(ctx.Context(), token, time.Now())
	if err != nil {
		if errors.Is(err, authservice.ErrTokenInvalidOrExpired) {
			setFlash(ctx, "Reset token is invalid or has expired")
			return ctx.Redirect(webpath.Forgot)
		}
		return err
	}
	return ctx.Render("reset", newData("Reset your Password").
		With("Token", token),
		"layouts/main")
}

func (s *Server) handleResetPost(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	password := ctx.FormValue("password", "")
	passwordConfirm := ctx.FormValue("password-confirm", "")
	_, cookie, err := s.auth.ResetPassword(ctx.Context(), token, time.Now(), password, passwordConfirm)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrPasswordMismatch):
			return ctx.Render("reset", newData("Reset your Password").
				WithErrors(err).
				With("Token", token),
				"layouts/main")
		case errors.Is(err, authservice.ErrTokenInvalidOrExpired):
			setFlash(ctx, "Reset token is invalid or has expired")
			return ctx.Redirect(webpath.Forgot)
		}
		return err
	}
	ctx.Cookie(cookie)
	setFlash(ctx, "Your password has been reset, you are now logged in!")
	return ctx.Redirect(webpath.Stores)
}

func (s *Server) handleSearch(ctx *fiber.Ctx) error {
	query := ctx.Query("q", "")
	if query == "" {
		return ctx.JSON([]storeDTO{})
	}
	stores, err := s.storeService.Search(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(convertStoreDTOs(stores))
}

// handleSuggest serves the typeahead from the in-memory name index instead
// of hitting storage on every keystroke.
func (s *Server) handleSuggest(ctx *fiber.Ctx) error {
	prefix := ctx.Query("q", "")
	if prefix == "" {
		return ctx.JSON([]storeDTO{})
	}
	stores, err := s.storeService.Suggest(ctx.Context(), prefix)
	if err != nil {
		return err
	}
	return ctx.JSON(convertStoreDTOs(stores))
}

func (s *Server) handleNear(ctx *fiber.Ctx) error {
	lng, err := strconv.ParseFloat(ctx.Query("lng", ""), 64)
	if err != nil {
		return fiber.ErrBadRequest
	}
	lat, err := strconv.ParseFloat(ctx.Query("lat", ""), 64)
	if err != nil {
		return fiber.ErrBadRequest
	}
	stores, err := s.storeService.Near(ctx.Context(), lng, lat)
	if err != nil {
		return err
	}
	return ctx.JSON(convertStoreDTOs(stores))
}

func (s *Server) handleHeart(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	storeID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	hearted, count, err := s.storeService.ToggleHeart(ctx.Context(), user.ID, storeID)
	if err != nil {
		return err
	}
	return ctx.JSON(heartDTO{
		Hearted: hearted,
		Hearts:  count,
	})
}

func formatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
