package shared

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// HTTPURL yêu cầu URL tuyệt đối với scheme http/https và có host.
// Giá trị rỗng được bỏ qua (kết hợp validation.Required nếu bắt buộc).
var HTTPURL = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if p, ok := value.(*string); ok && p != nil {
		s = *p
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be a valid URL")
	}
	return nil
})

// NotBlank: khác Required ở chỗ chuỗi chỉ có khoảng trắng cũng bị từ chối
var NotBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// IsUniqueViolation nhận diện lỗi 23505 của PostgreSQL
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation nhận diện lỗi 23503 của PostgreSQL
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// TrimFields trim tại chỗ các field chuỗi (string hoặc *string khác nil).
// Gọi trước Validate để giới hạn độ dài áp lên đúng giá trị được lưu.
func TrimFields(fields ...interface{}) {
	for _, f := range fields {
		switch v := f.(type) {
		case *string:
			*v = strings.TrimSpace(*v)
		case **string:
			if *v != nil {
				trimmed := strings.TrimSpace(**v)
				*v = &trimmed
			}
		}
	}
}
