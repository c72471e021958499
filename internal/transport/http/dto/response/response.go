package response

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// BatchErrorResponse reports a partially applied batch.
type BatchErrorResponse struct {
	ErrorResponse
	Succeeded int `json:"succeeded"`
	Total     int `json:"total"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func MessageResponse(message string) Response {
	return Response{
		Status:  "success",
		Message: message,
	}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   err,
		Details: details,
	}
}

// ValidationErrorResponse lists every validation problem in Details.
func ValidationErrorResponse(problems []string) ErrorResponse {
	details := ""
	for i, p := range problems {
		if i > 0 {
			details += "; "
		}
		details += p
	}
	return ErrorResponseWithDetails("validation_failed", details)
}
