package orders

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. Valid values order correctly as strings.
type Date string

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", err
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date { return Date(t.Format(DateLayout)) }

func (d Date) IsZero() bool { return d == "" }

func (d Date) Before(o Date) bool { return d < o }

func (d Date) After(o Date) bool { return d > o }

func (d Date) String() string { return string(d) }
