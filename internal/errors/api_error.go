package errors

import "net/http"

// APIError is the uniform problem body returned by every endpoint:
// { status, title, detail, errors? }.
type APIError struct {
	Status int               `json:"status"`
	Title  string            `json:"title"`
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return e.Detail
}

func New(status int, title, detail string) *APIError {
	return &APIError{
		Status: status,
		Title:  title,
		Detail: detail,
	}
}

func Validation(detail string, fields map[string]string) *APIError {
	err := New(http.StatusBadRequest, "Dados inválidos", detail)
	err.Errors = fields
	return err
}

func BadRequest(detail string) *APIError {
	return New(http.StatusBadRequest, "Requisição inválida", detail)
}

// InvalidState signals an illegal session transition.
func InvalidState(detail string) *APIError {
	return New(http.StatusBadRequest, "Operação inválida", detail)
}

func Unauthorized(detail string) *APIError {
	if detail == "" {
		detail = "não autorizado"
	}
	return New(http.StatusUnauthorized, "Não autorizado", detail)
}

func NotFound(detail string) *APIError {
	if detail == "" {
		detail = "recurso não encontrado"
	}
	return New(http.StatusNotFound, "Não encontrado", detail)
}

func Conflict(detail string) *APIError {
	return New(http.StatusConflict, "Conflito", detail)
}

func Internal(detail string) *APIError {
	// Detail stays generic; the real cause is logged server-side only.
	if detail == "" {
		detail = "erro interno do servidor"
	}
	return New(http.StatusInternalServerError, "Erro interno", detail)
}
