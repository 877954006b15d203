// Package dto define los cuerpos JSON de la API y su conversión desde el dominio.
package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
