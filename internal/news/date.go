package news

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for item dates.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Date is a calendar date without a time component. It round-trips through JSON
// as an ISO date string and scans from a postgres DATE column via the embedded
// time.Time.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	parsed, errParse := time.Parse(DateLayout, value)
	if errParse != nil {
		return Date{}, errors.Join(errParse, ErrInvalidDate)
	}

	return Date{Time: parsed}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(DateLayout))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)

	parsed, errParse := ParseDate(value)
	if errParse != nil {
		return errParse
	}

	*d = parsed

	return nil
}
