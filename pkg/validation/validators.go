package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, digits, spaces and the punctuation found in names and
	// institution titles: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// Optional leading +, then 7 to 15 digits.
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// rules are the custom tags used by request structs in the v1 handlers.
var rules = map[string]validator.Func{
	"valid_name":       ValidName,
	"valid_phone":      ValidPhone,
	"no_emoji":         NoEmoji,
	"max_current_year": MaxCurrentYear,
}

// RegisterValidators installs the custom rules on v and makes it report
// fields by their json (or form) name.
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	for tag, fn := range rules {
		_ = v.RegisterValidation(tag, fn)
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ValidName accepts applicant names, institutions and awarding bodies.
// Empty values pass; pair with required.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || nameRegex.MatchString(val)
}

// ValidPhone accepts contact numbers such as +254712345678.
func ValidPhone(fl validator.FieldLevel) bool {
	val := strings.ReplaceAll(fl.Field().String(), " ", "")
	return val == "" || phoneRegex.MatchString(val)
}

// NoEmoji rejects supplementary-plane runes and symbol categories.
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 || unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// MaxCurrentYear bounds graduation and KCSE years by the current year.
// Zero is treated as absent.
func MaxCurrentYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year == 0 || year <= int64(time.Now().Year())
}
