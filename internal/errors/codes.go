package errors

import "net/http"

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeUnprocessable      Code = "UNPROCESSABLE"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeAborted:
		return http.StatusConflict
	case CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeUnimplemented:
		return http.StatusNotImplemented
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Reason discriminates rule violations within a code. Clients switch on the
// reason, the message is for humans.
type Reason string

// Rule violation reasons
const (
	ReasonNone                   Reason = ""
	ReasonChoiceNotFound         Reason = "CHOICE_NOT_FOUND"
	ReasonInvalidQuantity        Reason = "INVALID_QUANTITY"
	ReasonEmptySelection         Reason = "EMPTY_SELECTION"
	ReasonDuplicateSelection     Reason = "DUPLICATE_SELECTION"
	ReasonInvalidOption          Reason = "INVALID_OPTION"
	ReasonSlotConflict           Reason = "SLOT_CONFLICT"
	ReasonAttunementLimitReached Reason = "ATTUNEMENT_LIMIT_REACHED"
	ReasonInvalidItemType        Reason = "INVALID_ITEM_TYPE"
	ReasonInvalidAttunement      Reason = "INVALID_ATTUNEMENT"
	ReasonInvalidAmount          Reason = "INVALID_AMOUNT"
	ReasonInvalidLocation        Reason = "INVALID_LOCATION"
	ReasonConcurrentModification Reason = "CONCURRENT_MODIFICATION"
)

func (r Reason) String() string {
	return string(r)
}
