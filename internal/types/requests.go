package types

import "github.com/go-playground/validator/v10"

// WorkExperience is one position in the applicant profile.
type WorkExperience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

// Education is one entry in the applicant's education history.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationYear string `json:"graduation_year"`
}

// GenerateRequest represents the request body for POST /generate.
type GenerateRequest struct {
	// Applicant profile
	UserName             string           `json:"user_name" validate:"required,min=1"`
	Email                string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone                string           `json:"phone,omitempty"`
	ProfessionalSummary  string           `json:"professional_summary,omitempty"`
	KeySkills            string           `json:"key_skills,omitempty"`
	WorkExperience       []WorkExperience `json:"work_experience,omitempty"`
	Education            []Education      `json:"education,omitempty"`
	Certifications       []string         `json:"certifications,omitempty"`
	Projects             []string         `json:"projects,omitempty"`
	TotalYearsExperience string           `json:"total_years_experience,omitempty"`

	// Job information
	JobTitle       string `json:"job_title" validate:"required,min=1"`
	CompanyName    string `json:"company_name" validate:"required,min=1"`
	Industry       string `json:"industry,omitempty"`
	JobDescription string `json:"job_description" validate:"required,min=1"`
	ExtraNotes     string `json:"extra_notes,omitempty"`

	// Tone and style
	Tone Tone `json:"tone" validate:"required,oneof=professional conversational enthusiastic formal"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SaveLetterRequest represents the request body for POST /letters.
type SaveLetterRequest struct {
	JobTitle            string `json:"job_title" validate:"required,min=1"`
	CompanyName         string `json:"company_name" validate:"required,min=1"`
	Industry            string `json:"industry,omitempty"`
	Tone                Tone   `json:"tone" validate:"required,oneof=professional conversational enthusiastic formal"`
	Letter              string `json:"letter" validate:"required,min=1"`
	KeySkills           string `json:"key_skills,omitempty"`
	ProfessionalSummary string `json:"professional_summary,omitempty"`
}

// Validate validates the SaveLetterRequest using the validator.
func (r *SaveLetterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FeedbackRequest represents the request body for POST /feedback.
type FeedbackRequest struct {
	LetterID     string `json:"letter_id" validate:"required,min=1"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	WasUsed      bool   `json:"was_used"`
	GotInterview *bool  `json:"got_interview,omitempty"`
	Comments     string `json:"comments,omitempty"`
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
