// Package bind decodes and validates JSON request payloads
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "fadet/internal/platform/errors"
	"fadet/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// jsonMore is a seam so tests can force the trailing-data branch
var jsonMore = func(dec *json.Decoder) bool { return dec.More() }

// validatorSvc bundles the process-wide validator with its english translator
type validatorSvc struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

func svc() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// error messages name fields by their json tag
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShortRange(v, trans, "min", "{0} must be at least {1}")
		registerShortRange(v, trans, "max", "{0} must be at most {1}")
		registerMSISDN(v, trans)

		vSvc = &validatorSvc{validate: v, trans: trans}
	})
	return vSvc
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
		AllowEmptyBody:  false,
	}
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	reader, bodyless, err := payloadReader(r, o)
	if err != nil {
		return zero, err
	}
	if bodyless {
		return zero, nil
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := svc().validate.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.Get().Error().Err(inv).Msg("validator internal error")
			return zero, perr.JSONErrf("validation error")
		}
		_, msg := validationFieldAndMessage(err)
		return zero, perr.Newf(perr.ErrorCodeValidation, "%s", msg)
	}

	return dst, nil
}

// payloadReader picks the reader for the request body. bodyless is true when
// a safe or idempotent method legitimately arrived with no payload
func payloadReader(r *http.Request, o JSONOptions) (reader io.Reader, bodyless bool, err error) {
	if o.AllowEmptyBody {
		return capped(r.Body, o.MaxBytes), false, nil
	}

	probe := make([]byte, 1)
	n, _ := r.Body.Read(probe)
	if n == 0 {
		switch r.Method {
		case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
			return nil, true, nil
		}
		return nil, false, perr.JSONErrf("empty body")
	}
	body := io.MultiReader(bytes.NewReader(probe[:n]), r.Body)
	return capped(body, o.MaxBytes), false, nil
}

func capped(r io.Reader, max int64) io.Reader {
	if max > 0 {
		return io.LimitReader(r, max)
	}
	return r
}

// validationFieldAndMessage returns the first failing field and its translated message
func validationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(svc().trans)
		}
	}
	return "", err.Error()
}

// registerShortRange swaps the default min and max messages for short ones
func registerShortRange(v *validator.Validate, trans ut.Translator, tag, template string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, template, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// registerMSISDN accepts digit-only subscriber and equipment identifiers.
// Covers national prefixes already rewritten to international form as well as IMEIs
func registerMSISDN(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 6 || len(s) > 20 {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	_ = v.RegisterTranslation("msisdn", trans,
		func(ut ut.Translator) error {
			return ut.Add("msisdn", "{0} must be a digit-only identifier", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("msisdn", fe.Field())
			return msg
		},
	)
}
