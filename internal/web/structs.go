package web

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goserg/storeserver/internal/domain"
)

type registerRequest struct {
	name            string
	email           string
	password        string
	passwordConfirm string
}

func parseRegisterRequest(ctx *fiber.Ctx) registerRequest {
	return registerRequest{
		name:            ctx.FormValue("name", ""),
		email:           ctx.FormValue("email", ""),
		password:        ctx.FormValue("password", ""),
		passwordConfirm: ctx.FormValue("password-confirm", ""),
	}
}

type loginRequest struct {
	email    string
	password string
}

func parseLoginRequest(ctx *fiber.Ctx) (loginRequest, error) {
	var err error
	email := ctx.FormValue("email", "")
	if email == "" {
		err = errors.Join(err, errors.New("email cannot be blank"))
	}
	password := ctx.FormValue("password", "")
	if password == "" {
		err = errors.Join(err, errors.New("password cannot be blank"))
	}
	if err != nil {
		return loginRequest{}, err
	}
	return loginRequest{
		email:    email,
		password: password,
	}, nil
}

func parseStoreForm(ctx *fiber.Ctx) (domain.Store, error) {
	var err error
	name := ctx.FormValue("name", "")
	if name == "" {
		err = errors.Join(err, errors.New("you must supply a store name"))
	}
	lng, lngErr := parseCoordinate(ctx.FormValue("lng", "0"), -180, 180)
	if lngErr != nil {
		err = errors.Join(err, errors.New("you must supply a valid longitude"))
	}
	lat, latErr := parseCoordinate(ctx.FormValue("lat", "0"), -90, 90)
	if latErr != nil {
		err = errors.Join(err, errors.New("you must supply a valid latitude"))
	}
	if err != nil {
		return domain.Store{}, err
	}
	return domain.Store{
		Name:        name,
		Description: ctx.FormValue("description", ""),
		Tags:        splitTags(ctx.FormValue("tags", "")),
		Photo:       ctx.FormValue("photo", ""),
		Location: domain.Location{
			Address: ctx.FormValue("address", ""),
			Lng:     lng,
			Lat:     lat,
		},
	}, nil
}

func parseCoordinate(raw string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, errors.New("out of range")
	}
	return v, nil
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool)
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

type reviewRequest struct {
	text   string
	rating int
}

func parseReviewRequest(ctx *fiber.Ctx) (reviewRequest, error) {
	var err error
	text := ctx.FormValue("text", "")
	if text == "" {
		err = errors.Join(err, errors.New("review cannot be blank"))
	}
	rating, ratingErr := strconv.Atoi(ctx.FormValue("rating", ""))
	if ratingErr != nil || rating < 1 || rating > 5 {
		err = errors.Join(err, errors.New("rating must be between 1 and 5"))
	}
	if err != nil {
		return reviewRequest{}, err
	}
	return reviewRequest{
		text:   text,
		rating: rating,
	}, nil
}
