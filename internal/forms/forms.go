// Package forms holds the input-validation descriptors. Field rules live
// in the binding tags so each form is a declarative list of validators,
// evaluated by gin's binder before the handler runs its own checks.
package forms

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Register struct {
	Username        string `form:"username" binding:"required"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type Login struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type Post struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

// Errors turns a binding error into user-visible field messages.
func Errors(err error) []string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return []string{"Invalid form submission."}
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required.", fe.Field()))
		case "eqfield":
			msgs = append(msgs, "Passwords do not match.")
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid.", fe.Field()))
		}
	}
	return msgs
}
