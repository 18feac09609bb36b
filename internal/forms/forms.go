// Package forms holds the declarative form definitions and their
// validation. Constraints live on struct tags and are checked before
// any handler-side work runs; a failed form never reaches the store.
package forms

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegisterForm struct {
	Username string `validate:"required,min=2,max=30"`
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required,min=8,max=72"`
}

// HelloForm backs the widget demo page.
type HelloForm struct {
	Name     string `validate:"required,max=20"`
	Remember bool
}

type BootswatchForm struct {
	Theme string `validate:"required,oneof=default cerulean cosmo cyborg darkly flatly journal litera lumen lux materia minty morph pulse quartz sandstone simplex sketchy slate solar spacelab superhero united vapor yeti zephyr"`
}

// Themes lists the selectable bootswatch themes in display order,
// "default" meaning no theme stylesheet.
var Themes = []string{
	"default", "cerulean", "cosmo", "cyborg", "darkly", "flatly",
	"journal", "litera", "lumen", "lux", "materia", "minty", "morph",
	"pulse", "quartz", "sandstone", "simplex", "sketchy", "slate",
	"solar", "spacelab", "superhero", "united", "vapor", "yeti", "zephyr",
}

func ParseLogin(r *http.Request) *LoginForm {
	return &LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
}

func ParseRegister(r *http.Request) *RegisterForm {
	return &RegisterForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
}

func ParseHello(r *http.Request) *HelloForm {
	return &HelloForm{
		Name:     r.FormValue("name"),
		Remember: r.FormValue("remember") != "",
	}
}

func ParseBootswatch(r *http.Request) *BootswatchForm {
	return &BootswatchForm{Theme: r.FormValue("theme")}
}

// Validate checks the form's struct tags and returns field-level error
// messages keyed by the lowercased field name. A nil map means the
// form is valid.
func Validate(form any) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"form": "Invalid submission."}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "oneof":
		return "Not a valid choice."
	default:
		return "Invalid value."
	}
}
