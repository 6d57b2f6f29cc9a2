package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// 6 to 15 digits, optionally separated by spaces, dashes, dots or
	// parentheses, with an optional leading +.
	phoneRegexPattern = `^(?=(?:\D*\d){6,15}\D*$)\+?[\d\s\-().]+$`
)

var (
	phoneExp = regexp2.MustCompile(phoneRegexPattern, regexp2.None)
	pinExp   = regexp.MustCompile(`^\d{4}$`)

	errInvalidPhone = errors.New("must be a valid phone number")
	errInvalidPIN   = errors.New("PIN must be 4 digits")
)

func validPhone(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	ok, err := phoneExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidPhone
	}

	return nil
}

var phoneRule = validation.By(validPhone)

var pinRule = validation.Match(pinExp).Error(errInvalidPIN.Error())
