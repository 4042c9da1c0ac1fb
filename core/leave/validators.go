package leave

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/muhammadsami84343/ecampus/core"
)

var (
	categoryTag  = "leavecategory"
	categoryText = "{0} must be one of casual, sick, earned, unpaid, maternity, paternity or half-day"

	endDateTag  = "enddate"
	endDateText = "{0} is required unless the leave is a half day"
)

// InitValidators registers the leave validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)

	validate.RegisterStructValidation(newRequestStructValidation, NewRequest{})
	core.RegisterCustomTranslation(validate, translator, endDateTag, endDateText)
}

func categoryValidation(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).IsValid()
}

// newRequestStructValidation requires an end date for every category but half days.
func newRequestStructValidation(sl validator.StructLevel) {
	if nr, ok := sl.Current().Interface().(NewRequest); ok {
		if nr.Category != CategoryHalfDay && nr.EndDate == "" {
			sl.ReportError(nr.EndDate, "end_date", "EndDate", endDateTag, "")
		}
	}
}
