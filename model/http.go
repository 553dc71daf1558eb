package model

type DeleteRequestBody struct {
	IDs []string `json:"ids"`
}

type RangeResponse struct {
	Start  uint64      `json:"start"`
	End    uint64      `json:"end"`
	Events []NoteEvent `json:"events"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type StatsResponse struct {
	Events int `json:"events"`
}
