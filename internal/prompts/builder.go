package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// BuildLetterPrompt assembles the full generation prompt for a request,
// optionally weaving in reference examples selected from past successful
// letters.
func BuildLetterPrompt(req *types.GenerateRequest, examples []types.ExampleRef) (string, error) {
	toneGuide, err := Get("tone_" + string(req.Tone))
	if err != nil {
		return "", fmt.Errorf("unknown tone %q: %w", req.Tone, err)
	}

	var sb strings.Builder
	sb.WriteString(Format(MustGet("preamble"), map[string]string{"UserName": req.UserName}))
	sb.WriteString("\n\nJob Information\n")
	sb.WriteString("Position " + req.JobTitle + "\n")
	sb.WriteString("Company " + req.CompanyName + "\n")
	sb.WriteString("Job Description " + req.JobDescription + "\n")
	if req.ExtraNotes != "" {
		sb.WriteString("Additional Notes " + req.ExtraNotes + "\n")
	} else {
		sb.WriteString("Additional Notes None\n")
	}

	sb.WriteString("\nApplicant Profile\n")
	sb.WriteString(applicantProfile(req))

	sb.WriteString("\nWriting Tone " + titleCase(string(req.Tone)) + "\n")

	if len(examples) > 0 {
		sb.WriteString("\n" + MustGet("examples_intro") + "\n\n")
		for i, ex := range examples {
			sb.WriteString(fmt.Sprintf("Example %d for %s at %s\n%s\n\n", i+1, ex.JobTitle, ex.CompanyName, ex.Excerpt))
		}
	}

	sb.WriteString("\nTONE AND STYLE REQUIREMENTS\n")
	sb.WriteString(toneGuide + "\n")

	sb.WriteString("\n" + MustGet("structure_guidelines") + "\n")

	sb.WriteString("\nIMPORTANT INSTRUCTIONS FOR HUMANIZED OUTPUT\n")
	sb.WriteString("Write in first person as " + req.UserName + "\n")
	sb.WriteString("Tailor the content specifically to the job description provided\n")
	if len(req.WorkExperience) > 0 {
		sb.WriteString("Reference specific achievements and responsibilities from the work experience provided. Use quantifiable results when available.\n")
	}
	if len(req.Education) > 0 {
		sb.WriteString("Mention relevant educational background when it aligns with job requirements.\n")
	}
	if len(req.Certifications) > 0 {
		sb.WriteString("Highlight relevant certifications that match the job requirements.\n")
	}
	if len(req.Projects) > 0 {
		sb.WriteString("Reference relevant projects that demonstrate skills needed for this role.\n")
	}
	if req.KeySkills != "" {
		sb.WriteString("Naturally incorporate the skills listed " + req.KeySkills + "\n")
	} else {
		sb.WriteString("Focus on transferable skills and qualifications\n")
	}
	if req.ProfessionalSummary != "" {
		sb.WriteString("Build upon this experience " + req.ProfessionalSummary + "\n")
	} else {
		sb.WriteString("Focus on enthusiasm and potential if experience is limited\n")
	}
	if req.TotalYearsExperience != "" {
		sb.WriteString("Emphasize " + req.TotalYearsExperience + " of experience when relevant to the position\n")
	}
	sb.WriteString("Match the job description keywords and requirements naturally\n")
	sb.WriteString("Keep the letter concise between 230 and 280 words maximum\n")
	sb.WriteString("Make it feel authentic and personal\n")
	sb.WriteString(contactLine(req) + "\n")
	sb.WriteString("Use specific examples from the work experience achievements and responsibilities provided\n")
	sb.WriteString("Avoid generic statements and use specific relevant details from both the job description and the applicant profile\n")
	sb.WriteString("Do NOT fabricate experience or skills not mentioned in the profile\n")
	sb.WriteString("ONLY use information explicitly provided in the applicant profile above\n")

	sb.WriteString("\n" + MustGet("formatting_rules"))

	return sb.String(), nil
}

// applicantProfile renders the profile block: identity, summary, skills,
// work history, education, certifications, and projects.
func applicantProfile(req *types.GenerateRequest) string {
	var sb strings.Builder
	sb.WriteString("Name " + req.UserName + "\n")
	if req.Email != "" {
		sb.WriteString("Email " + req.Email + "\n")
	}
	if req.Phone != "" {
		sb.WriteString("Phone " + req.Phone + "\n")
	}
	if req.TotalYearsExperience != "" {
		sb.WriteString("Total Experience " + req.TotalYearsExperience + "\n")
	}
	if req.ProfessionalSummary != "" {
		sb.WriteString("Professional Summary " + req.ProfessionalSummary + "\n")
	}
	if req.KeySkills != "" {
		sb.WriteString("Key Skills " + req.KeySkills + "\n")
	}

	if len(req.WorkExperience) > 0 {
		sb.WriteString("\nWork Experience\n")
		for i, exp := range req.WorkExperience {
			sb.WriteString(fmt.Sprintf("%d. %s at %s (%s)\n", i+1, exp.Position, exp.Company, exp.Duration))
			if len(exp.Responsibilities) > 0 {
				sb.WriteString("   Responsibilities: " + strings.Join(exp.Responsibilities, ", ") + "\n")
			}
			if len(exp.Achievements) > 0 {
				sb.WriteString("   Achievements: " + strings.Join(exp.Achievements, ", ") + "\n")
			}
		}
	}

	if len(req.Education) > 0 {
		sb.WriteString("\nEducation\n")
		for i, edu := range req.Education {
			sb.WriteString(fmt.Sprintf("%d. %s in %s from %s (%s)\n", i+1, edu.Degree, edu.Field, edu.Institution, edu.GraduationYear))
		}
	}

	if len(req.Certifications) > 0 {
		sb.WriteString("\nCertifications: " + strings.Join(req.Certifications, ", ") + "\n")
	}

	if len(req.Projects) > 0 {
		sb.WriteString("\nNotable Projects\n")
		for i, project := range req.Projects {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, project))
		}
	}

	return sb.String()
}

// contactLine spells out which contact details to include at the end of the
// letter, depending on what the applicant provided.
func contactLine(req *types.GenerateRequest) string {
	line := "Include appropriate contact information at the end with name"
	if req.Email != "" {
		line += " and email"
	}
	if req.Phone != "" {
		line += " and phone"
	}
	return line
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
