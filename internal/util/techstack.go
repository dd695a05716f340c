package util

import "strings"

// SplitTechstack turns "React, Node,SQL" into ["React" "Node" "SQL"].
func SplitTechstack(techstack string) []string {
	parts := strings.Split(techstack, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
