package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// tagNameRule applies to a tag name after NormalizeTag.
const tagNameRule = "notblank,max=64"

func validateTagName(name string) error {
	if err := validate.Var(name, tagNameRule); err != nil {
		return fmt.Errorf("%w: tag names must be non-blank and at most 64 characters", ErrValidation)
	}
	return nil
}

// validateCreate checks in with its tag names trimmed, so a name is accepted
// here exactly when ResolveTag would accept it.
func validateCreate(in QuestionCreate) error {
	if in.Tags != nil {
		trimmed := make([]string, len(in.Tags))
		for i, t := range in.Tags {
			trimmed[i] = NormalizeTag(t)
		}
		in.Tags = trimmed
	}
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if strings.HasPrefix(fe.Namespace(), "QuestionCreate.Tags[") {
		field = "tag names"
	}
	switch fe.Tag() {
	case "notblank":
		return field + " must not be blank"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
