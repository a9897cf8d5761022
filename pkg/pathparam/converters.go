package pathparam

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civilian-dev/civilian/internal/errors"
)

// Predefined converters for Converting.
var (
	Int = Converter[int]{
		TypeName: "int",
		Parse:    strconv.Atoi,
		Format:   strconv.Itoa,
	}

	Int64 = Converter[int64]{
		TypeName: "int64",
		Parse: func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		},
		Format: func(v int64) string {
			return strconv.FormatInt(v, 10)
		},
	}

	Uint = Converter[uint]{
		TypeName: "uint",
		Parse: func(s string) (uint, error) {
			v, err := strconv.ParseUint(s, 10, 0)
			return uint(v), err
		},
		Format: func(v uint) string {
			return strconv.FormatUint(uint64(v), 10)
		},
	}

	Float64 = Converter[float64]{
		TypeName: "float64",
		Parse: func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		},
		Format: func(v float64) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		},
	}

	Bool = Converter[bool]{
		TypeName: "bool",
		Parse:    strconv.ParseBool,
		Format:   strconv.FormatBool,
	}

	// UUID parses the forms accepted by uuid.Parse and builds the
	// canonical lower-case 8-4-4-4-12 form.
	UUID = Converter[uuid.UUID]{
		TypeName: "uuid",
		Parse:    uuid.Parse,
		Format:   uuid.UUID.String,
	}

	// CompactDate parses "yyyymmdd" into a UTC midnight time.Time.
	CompactDate = Converter[time.Time]{
		TypeName: "date",
		Parse: func(s string) (time.Time, error) {
			if len(s) != 8 {
				return time.Time{}, fmt.Errorf("invalid date %q", s)
			}
			return time.Parse("20060102", s)
		},
		Format: func(t time.Time) string {
			return t.Format("20060102")
		},
	}
)

// ConverterNames lists the names accepted by ConvertingNamed.
var ConverterNames = []string{"int", "int64", "uint", "float64", "bool", "uuid", "date"}

// ConvertingNamed is Converting with the converter selected by name.
func ConvertingNamed(inner PathParam, name, converter string) (PathParam, error) {
	switch converter {
	case "int":
		return Converting(inner, name, Int)
	case "int64":
		return Converting(inner, name, Int64)
	case "uint":
		return Converting(inner, name, Uint)
	case "float64":
		return Converting(inner, name, Float64)
	case "bool":
		return Converting(inner, name, Bool)
	case "uuid":
		return Converting(inner, name, UUID)
	case "date":
		return Converting(inner, name, CompactDate)
	}
	return nil, errors.New("E111").
		WithDetailf("parameter %q: converter %q", name, converter).
		WithSuggestion("Use one of: " + strings.Join(ConverterNames, ", "))
}
