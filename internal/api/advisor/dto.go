package advisor

type AskRequest struct {
	Question string `json:"question" validate:"required,min=3,max=2000"`
	Hand     string `json:"hand,omitempty" validate:"omitempty,max=64"`
	Position string `json:"position,omitempty" validate:"omitempty,max=32"`
}

type Advice struct {
	Answer string `json:"answer"`
}

type AskResponse struct {
	Data Advice `json:"data"`
}
