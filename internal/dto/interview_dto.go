package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// GenerateInterviewRequest is the body posted to /api/vapi/generate by the
// voice assistant.
type GenerateInterviewRequest struct {
	Type      string  `json:"type" validate:"required"`
	Role      string  `json:"role" validate:"required"`
	Level     string  `json:"level" validate:"required"`
	Techstack string  `json:"techstack" validate:"required"`
	Amount    FlexInt `json:"amount" validate:"required,min=1,max=50"`
	UserID    string  `json:"userid" validate:"required"`
}

// FlexInt accepts both 5 and "5"; voice tool calls tend to send numbers as strings.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("amount must be an integer, got %q", s)
		}
		*n = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("amount must be an integer: %w", err)
	}
	*n = FlexInt(v)
	return nil
}

type LatestInterviewsQuery struct {
	UserID string
	Limit  int
}

const DefaultLatestLimit = 20
