// Package validator checks struct fields against `validate` tags and
// reports every failure at once as ValidationErrors, keyed by field path
// and carrying translation metadata for localized messages.
//
// # Tag syntax
//
// Rules are separated by semicolons, parameters by colons, and multiple
// parameters by commas:
//
//	type SignupRequest struct {
//		Email    string `validate:"required;email"`
//		Username string `validate:"required;between:3,30;alphanum"`
//		Age      int    `validate:"min:18;max:120"`
//		Role     string `validate:"in:admin,editor,viewer"`
//		Website  string `validate:"url"`
//		Internal string `validate:"-"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//		for _, ve := range validator.ExtractValidationErrors(err) {
//			log.Printf("%s: %s", ve.Field, ve.Message)
//		}
//	}
//
// Validation does not stop at the first failure; each failed rule adds
// one ValidationError. Nested structs are descended into whether tagged
// or not, and their errors use dotted paths like "Address.City". Nil
// pointers only ever fail "required"; non-nil pointers validate their
// element.
//
// # Builtin rules
//
// Strings: required, min, max, len, between, email, url, phone,
// alphanum, alpha, numeric, uuid (optionally uuid:4), in, not_in,
// contains, prefix, suffix, regex.
//
// Numbers: min, max, between, positive, negative, zero, nonzero.
//
// Dates (string fields): date accepts 2006-01-02, a space-separated
// datetime, or RFC3339; date_format takes an explicit layout; after and
// before compare an RFC3339 value against an RFC3339 or bare-date
// boundary.
//
// Rules applied to a type they do not understand pass silently, so a
// tag like `min:3` is safe on both strings and ints.
//
// # Programmatic rules
//
// The tag layer sits on plain Rule constructors that can be used
// directly when a check does not fit a tag:
//
//	rule := validator.ValidEmail("email", input.Email)
//	if !rule.Check() {
//		errs.Add(rule.Error)
//	}
//
// # Custom validators
//
// RegisterValidator attaches a ValidatorFunc to a tag name:
//
//	validator.RegisterValidator("even", func(field string, value reflect.Value, params []string) validator.Rule {
//		return validator.Rule{
//			Check: func() bool { return value.Int()%2 == 0 },
//			Error: validator.ValidationError{
//				Field:   field,
//				Message: "must be an even number",
//			},
//		}
//	})
//
// # Errors
//
// ValidationErrors implements error; ExtractValidationErrors recovers
// the typed slice from an error value, and IsValidationError reports
// whether an error came from this package. Each ValidationError carries
// Field, a human Message, and TranslationKey plus TranslationValues for
// i18n pipelines.
package validator
