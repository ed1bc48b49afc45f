package httperr

import "errors"

// Business rule codes returned to API clients.
const (
	CodeInvalidState     = "invalid_state"
	CodeInvalidStatus    = "invalid_status"
	CodeInvalidDateTime  = "invalid_date_or_time"
	CodeClientNotFound   = "client_not_found"
	CodeInvalidTimeFrame = "invalid_time_frame"
)

var businessMessages = map[string]string{
	CodeInvalidState:     "Operação não permitida no status atual.",
	CodeInvalidStatus:    "Status inválido.",
	CodeInvalidDateTime:  "Data ou horário inválido.",
	CodeClientNotFound:   "Cliente não encontrado.",
	CodeInvalidTimeFrame: "Período inválido.",
}

// BusinessError is a domain rule violation. It maps to a 400.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// Message is the user facing text for the code, or the code itself.
func (e BusinessError) Message() string {
	if msg, ok := businessMessages[e.Code]; ok {
		return msg
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err is a BusinessError with the given code.
// An empty code matches any business error.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}
	return code == "" || be.Code == code
}
