package pathparam

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/routepath"
)

// DateType creates and splits date values of type T.
type DateType[T any] interface {
	// TypeName names T in diagnostics.
	TypeName() string

	// Create returns the date for the given calendar day, or an error when
	// the day does not exist (e.g. February 30).
	Create(year, month, day int) (T, error)

	// Split returns the calendar day of v.
	Split(v T) (year, month, day int)
}

type timeDate struct{}

// TimeDate is the DateType for time.Time values at UTC midnight.
var TimeDate DateType[time.Time] = timeDate{}

func (timeDate) TypeName() string { return "date" }

func (timeDate) Create(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	return t, nil
}

func (timeDate) Split(v time.Time) (int, int, int) {
	y, m, d := v.Date()
	return y, int(m), d
}

var ymdPattern = regexp.MustCompile(`^([0-9]{4})/([0-1][0-9])/([0-3][0-9])`)

type ymdParam[T any] struct {
	base
	dates DateType[T]
}

// YearMonthDay returns a parameter that matches a date written as three
// segments "/yyyy/mm/dd". Days that do not exist in the calendar miss.
func YearMonthDay[T any](name string, dates DateType[T]) PathParam {
	return &ymdParam[T]{base: base{name}, dates: dates}
}

func (p *ymdParam[T]) Kind() Kind            { return KindYearMonthDay }
func (p *ymdParam[T]) TypeName() string      { return p.dates.TypeName() }
func (p *ymdParam[T]) PatternString() string { return "yyyy/mm/dd" }

func (p *ymdParam[T]) Parse(s routepath.Scanner) (any, routepath.Scanner, bool) {
	groups, rest, ok := s.MatchPattern(ymdPattern)
	if !ok {
		return nil, s, false
	}
	year, _ := strconv.Atoi(groups[1])
	month, _ := strconv.Atoi(groups[2])
	day, _ := strconv.Atoi(groups[3])
	date, err := p.dates.Create(year, month, day)
	if err != nil {
		return nil, s, false
	}
	return date, rest, true
}

func (p *ymdParam[T]) BuildPath(value any, b *strings.Builder) error {
	v, ok := value.(T)
	if !ok {
		return typeError(p, value)
	}
	year, month, day := p.dates.Split(v)
	if year < 0 || year > 9999 {
		return errors.New("E131").WithDetailf("%s cannot format year %d", Detailed(p), year)
	}
	fmt.Fprintf(b, "/%04d/%02d/%02d", year, month, day)
	return nil
}
