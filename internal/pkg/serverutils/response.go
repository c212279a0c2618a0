package serverutils

// Response is the envelope every handler returns on success. Data stays
// generic so payloads keep their concrete type at the call site.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorPayload carries the HTTP code in the body so clients do not have
// to correlate the status line with the envelope.
type ErrorPayload struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorPayload {
	return ErrorPayload{
		Success: false,
		Code:    code,
		Message: message,
	}
}
