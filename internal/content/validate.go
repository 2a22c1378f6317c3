package content

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag     = "notblank"
	slugTag         = "slug"
	answerOptionTag = "answer_option"
	uniqueEntryTag  = "unique_entry"

	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func init() {
	validate = validator.New()

	_en := en.New()
	var found bool
	translator, found = ut.New(_en, _en).GetTranslator("en")
	if !found {
		panic("content: english translator not registered")
	}
	must(en_translations.RegisterDefaultTranslations(validate, translator))

	// Report JSON field names, not Go names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(validate.RegisterValidation(slugTag, func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	}))
	validate.RegisterStructValidation(questionStructValidation, QuestionData{})
	validate.RegisterStructValidation(topicStructValidation, Topic{})

	messages := map[string]string{
		notBlankTag:     "{0} cannot be blank",
		slugTag:         "{0} must be lowercase words joined by dashes",
		answerOptionTag: "{0} must be one of the options",
		uniqueEntryTag:  "{0} is used by more than one entry",
	}
	for tag, msg := range messages {
		must(validate.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, msg, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(fe.Tag(), fe.Field())
				return s
			}))
	}
}

// must panics on a validator setup error.
func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("content: validator setup: %v", err))
	}
}

func questionStructValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(QuestionData)
	if q.Answer != "" && !slices.Contains(q.Options, q.Answer) {
		sl.ReportError(q.Answer, "answer", "Answer", answerOptionTag, "")
	}
}

func topicStructValidation(sl validator.StructLevel) {
	t := sl.Current().Interface().(Topic)
	seen := make(map[string]bool)
	for _, su := range t.SubUnits {
		for _, e := range su.Entries {
			if seen[e.ID] {
				sl.ReportError(e.ID, "id", "ID", uniqueEntryTag, "")
			}
			seen[e.ID] = true
		}
	}
}

// ValidationError lists every rule a document broke.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid content: " + strings.Join(e.Problems, "; ")
}

// Check applies the struct rules to a topic or question.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Problems = append(out.Problems, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Translate(translator)))
	}
	return out
}
