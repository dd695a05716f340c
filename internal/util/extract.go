package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrNoJSONFound is returned when the model output has no bracketed array.
var ErrNoJSONFound = errors.New("no JSON array found in model response")

// JSONParseError carries the model output and the extracted candidate so the
// failure can be diagnosed from logs.
type JSONParseError struct {
	Raw       string
	Extracted string
	Err       error
}

func (e *JSONParseError) Error() string {
	return fmt.Sprintf("failed to parse questions as JSON: %v", e.Err)
}

func (e *JSONParseError) Unwrap() error {
	return e.Err
}

type QuestionParseStatus int

const (
	QuestionsParsed QuestionParseStatus = iota
	QuestionsNoJSON
	QuestionsParseFailed
)

// QuestionParse is the result of ParseQuestions. Only Questions is set when
// Status is QuestionsParsed.
type QuestionParse struct {
	Status    QuestionParseStatus
	Questions []string
	Raw       string
	Extracted string
	Err       error
}

// Error returns nil for a successful parse, ErrNoJSONFound or a *JSONParseError otherwise.
func (p QuestionParse) Error() error {
	switch p.Status {
	case QuestionsParsed:
		return nil
	case QuestionsNoJSON:
		return ErrNoJSONFound
	default:
		return &JSONParseError{Raw: p.Raw, Extracted: p.Extracted, Err: p.Err}
	}
}

// Greedy on purpose: everything from the first '[' to the last ']'.
var jsonArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseQuestions pulls a JSON array of strings out of free-form model text.
// Commentary before or after the array is ignored.
func ParseQuestions(raw string) QuestionParse {
	extracted := jsonArrayPattern.FindString(raw)
	if extracted == "" {
		return QuestionParse{Status: QuestionsNoJSON, Raw: raw}
	}

	var questions []string
	if err := json.Unmarshal([]byte(extracted), &questions); err != nil {
		return QuestionParse{Status: QuestionsParseFailed, Raw: raw, Extracted: extracted, Err: err}
	}
	if questions == nil {
		questions = []string{}
	}
	return QuestionParse{Status: QuestionsParsed, Questions: questions, Raw: raw, Extracted: extracted}
}
