package api

// NamesResponse is the body of a successful GET /api/names.
type NamesResponse struct {
	Names    []string `json:"names"`
	PoolSize int      `json:"poolSize"`
}

// SubmitResultRequest is the body of POST /api/results.
// Arrays must be present (null or missing is rejected) but may be empty.
// Score must be an integral JSON number; a fractional value fails decoding.
type SubmitResultRequest struct {
	Email            string   `json:"email"            validate:"notblank"`
	NamesPresented   []string `json:"namesPresented"   validate:"required"`
	AnswersSubmitted []string `json:"answersSubmitted" validate:"required"`
	Score            *int     `json:"score"            validate:"required,gte=0"`
	Status           string   `json:"status"           validate:"required,oneof=fail good better excellent"`
}
