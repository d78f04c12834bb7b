package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout 為 API 與資料庫 DATE 欄位共用的日期格式
const DateLayout = "2006-01-02"

// Date 以 YYYY-MM-DD 序列化的日期
type Date struct {
	time.Time
}

// ParseDate 解析 YYYY-MM-DD 字串
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
