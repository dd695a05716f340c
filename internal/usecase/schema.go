package usecase

import (
	"github.com/fadilmartias/mockmate/internal/model"
	"google.golang.org/genai"
)

// feedbackSchema mirrors dto.FeedbackObject for providers with native schema support.
var feedbackSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"totalScore": {
			Type:        genai.TypeInteger,
			Description: "Overall score from 0 to 100.",
		},
		"categoryScores": {
			Type:        genai.TypeArray,
			Description: "Exactly one entry per category, in the listed order.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":    {Type: genai.TypeString, Enum: model.FeedbackCategories},
					"score":   {Type: genai.TypeInteger, Description: "Score from 0 to 100."},
					"comment": {Type: genai.TypeString},
				},
				Required: []string{"name", "score", "comment"},
			},
		},
		"strengths": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"areasForImprovement": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"finalAssessment": {Type: genai.TypeString},
	},
	Required: []string{"totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
}
