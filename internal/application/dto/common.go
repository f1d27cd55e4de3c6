package dto

// ErrorResponse cuerpo de error HTTP. Available/Requested solo viajan en los
// 409 de stock insuficiente para que el caller decida sin parsear el mensaje.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available *int64 `json:"available,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
}

// HealthResponse respuesta de los endpoints /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Message string `json:"message,omitempty"`
}
