package utils

import "strings"

// NullableString trả nil cho chuỗi rỗng (sau trim) để ghi NULL xuống DB
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
