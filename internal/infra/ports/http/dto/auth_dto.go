package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Provider string `json:"provider"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SubmitStudentCardRequest struct {
	StudentCardURL string `json:"student_card_url"`
}

type ReviewVerificationRequest struct {
	Approved bool `json:"approved"`
}
