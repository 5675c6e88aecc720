// Package pagination chuẩn hóa query param page/limit và tính meta cho list endpoints.
package pagination

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page   int
	Limit  int
	Offset int
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Parse không bao giờ lỗi: giá trị không hợp lệ rơi về default.
//   page  = max(1, parsed) ; không parse được hoặc 0 -> 1
//   limit = clamp(parsed, 1, 100) ; không parse được hoặc 0 -> 20
// Số được đọc theo kiểu prefix: "3abc" -> 3, "abc" -> không parse được.
func Parse(pageRaw, limitRaw string) Params {
	page := DefaultPage
	if n, ok := leadingInt(pageRaw); ok && n > 0 {
		page = n
	}

	limit := DefaultLimit
	if n, ok := leadingInt(limitRaw); ok && n != 0 {
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// NewMeta: totalPages = ceil(total/limit), 0 khi total = 0
func NewMeta(page, limit int, total int64) Meta {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// tràn int: giữ dấu, Parse sẽ clamp
		if s[0] == '-' {
			return -1, true
		}
		return math.MaxInt32, true
	}
	return n, true
}
