package validators

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

var appointmentStatuses = map[string]struct{}{
	"pending":   {},
	"completed": {},
	"cancelled": {},
}

// Register adds the salon tags to gin's validator:
//
//	salon_date          YYYY-MM-DD
//	salon_time          HH:MM
//	salon_email         address pattern
//	appointment_status  pending | completed | cancelled
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"salon_date":         matches(datePattern),
		"salon_time":         matches(timePattern),
		"salon_email":        func(fl validator.FieldLevel) bool { return IsEmailValid(fl.Field().String()) },
		"appointment_status": isAppointmentStatus,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func isAppointmentStatus(fl validator.FieldLevel) bool {
	_, ok := appointmentStatuses[fl.Field().String()]
	return ok
}
