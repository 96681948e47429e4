package primitive

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// fhirPrimitiveTypes contains all FHIR primitive type codes.
var fhirPrimitiveTypes = map[string]bool{
	"boolean":      true,
	"integer":      true,
	"integer64":    true,
	"string":       true,
	"decimal":      true,
	"uri":          true,
	"url":          true,
	"canonical":    true,
	"base64Binary": true,
	"instant":      true,
	"date":         true,
	"dateTime":     true,
	"time":         true,
	"code":         true,
	"oid":          true,
	"id":           true,
	"markdown":     true,
	"unsignedInt":  true,
	"positiveInt":  true,
	"uuid":         true,
	"xhtml":        true,
}

// IsPrimitiveType returns true if the type code is a FHIR primitive type.
func IsPrimitiveType(typeCode string) bool {
	return fhirPrimitiveTypes[typeCode]
}

// IsIntegerType returns true for the integer-shaped primitive codes,
// including the bounded unsignedInt and positiveInt types.
func IsIntegerType(typeCode string) bool {
	switch typeCode {
	case "integer", "integer64", "unsignedInt", "positiveInt":
		return true
	}
	return false
}

// IsDateTimeType returns true for the date/time-like primitive codes.
func IsDateTimeType(typeCode string) bool {
	switch typeCode {
	case "date", "dateTime", "instant", "time":
		return true
	}
	return false
}

// Coerce converts a stored raw value into a domain Value for the given
// primitive type code. Raw values may be host scalars (string, bool,
// numeric), decimal.Decimal, json.Number, or an already-constructed Value,
// which passes through unchanged.
//
// Callers that favor availability over strictness (the object-tree adapter)
// fall back to the raw value when Coerce fails; callers that validate (the
// wire decoder, tests) treat the error as authoritative.
func Coerce(typeCode string, raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case Value:
		return v, nil
	case bool:
		return Boolean(v), nil
	case string:
		return coerceString(typeCode, v)
	case int:
		return Integer(v), nil
	case int32:
		return Integer(v), nil
	case int64:
		return Integer(v), nil
	case float64:
		return coerceFloat(typeCode, v)
	case decimal.Decimal:
		return NewDecimal(v), nil
	case json.Number:
		return coerceString(typeCode, v.String())
	}
	return nil, fmt.Errorf("cannot coerce %T to %s", raw, typeCode)
}

func coerceString(typeCode, s string) (Value, error) {
	switch {
	case typeCode == "boolean":
		return ParseBoolean(s)
	case IsIntegerType(typeCode):
		return ParseInteger(typeCode, s)
	case typeCode == "decimal":
		return ParseDecimal(s)
	case typeCode == "date":
		return ParseDate(s)
	case typeCode == "dateTime":
		return ParseDateTime(s)
	case typeCode == "instant":
		return ParseInstant(s)
	case typeCode == "time":
		return ParseTime(s)
	}
	return String(s), nil
}

func coerceFloat(typeCode string, f float64) (Value, error) {
	if IsIntegerType(typeCode) {
		if f != float64(int64(f)) {
			return nil, fmt.Errorf("cannot coerce %v to %s: not integral", f, typeCode)
		}
		return Integer(int64(f)), nil
	}
	return DecimalFromFloat(f), nil
}
