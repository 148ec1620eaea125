package dto

// StartSessionDTO starts a new practice session for a topic.
type StartSessionDTO struct {
	Topic string `json:"topic" binding:"required"`
	Mode  string `json:"mode" binding:"required,oneof=quiz interview"`
	Count int    `json:"count" binding:"omitempty,min=1,max=50"`
}

// RecordAnswerDTO commits a value for the session's current question.
// Quiz answers set SelectedChoice; interview answers set Text.
type RecordAnswerDTO struct {
	Text           string `json:"text"`
	SelectedChoice *int   `json:"selected_choice" binding:"omitempty,min=0"`
}

// HintRequestDTO asks for a hint on the current question given the user's
// draft so far.
type HintRequestDTO struct {
	DraftAnswer string `json:"draft_answer"`
}
