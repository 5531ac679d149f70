package introspect

import (
	"strconv"
	"strings"
)

// LogicalType maps a raw backend column type onto a backend-agnostic type name.
// Unknown types fall back to their lowercase base name.
func LogicalType(sqlType string) string {
	full := strings.ToLower(strings.TrimSpace(sqlType))
	if full == "" {
		return ""
	}
	base := full
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	base = strings.TrimSpace(strings.TrimSuffix(base, "unsigned"))

	switch base {
	case "tinyint":
		// MySQL convention for booleans
		if strings.HasPrefix(full, "tinyint(1)") {
			return "boolean"
		}
		return "integer"
	case "integer", "int", "smallint", "mediumint", "bigint", "int2", "int4", "int8",
		"serial", "smallserial", "bigserial":
		return "integer"
	case "character varying", "varchar", "char", "character", "nvarchar", "nchar",
		"varchar2", "nvarchar2", "bpchar", "citext":
		return "string"
	case "text", "tinytext", "mediumtext", "longtext", "ntext", "clob", "nclob", "long":
		return "text"
	case "boolean", "bool", "bit":
		return "boolean"
	case "float", "double", "double precision", "real", "float4", "float8",
		"binary_float", "binary_double":
		return "float"
	case "decimal", "dec", "numeric", "number", "money", "smallmoney":
		return "decimal"
	case "timestamp", "timestamp without time zone", "timestamp with time zone", "timestamptz",
		"datetime", "datetime2", "smalldatetime", "datetimeoffset":
		return "datetime"
	case "date":
		return "date"
	case "time", "time without time zone", "time with time zone", "timetz":
		return "time"
	case "blob", "tinyblob", "mediumblob", "longblob", "bytea", "binary", "varbinary",
		"image", "raw", "long raw":
		return "binary"
	case "json":
		return "json"
	case "jsonb":
		return "jsonb"
	case "uuid", "uniqueidentifier":
		return "uuid"
	}

	// SQLite type affinity rules
	switch {
	case strings.Contains(base, "int"):
		return "integer"
	case strings.Contains(base, "char"):
		return "string"
	case strings.Contains(base, "clob"), strings.Contains(base, "text"):
		return "text"
	case strings.Contains(base, "blob"):
		return "binary"
	case strings.Contains(base, "real"), strings.Contains(base, "floa"), strings.Contains(base, "doub"):
		return "float"
	}
	return base
}

// NormalizeDefault turns a raw default expression into the declared literal.
// It returns nil for NULL and for computed defaults such as nextval(...) or
// CURRENT_TIMESTAMP. Literals are returned as strings.
func NormalizeDefault(raw *string) any {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	for isWrapped(s) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	// PostgreSQL casts: 'draft'::character varying
	if i := strings.LastIndex(s, "::"); i > 0 && !strings.Contains(s[i:], "'") {
		s = strings.TrimSpace(s[:i])
	}
	for isWrapped(s) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	switch {
	case s == "" || strings.EqualFold(s, "null"):
		return nil
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	case strings.EqualFold(s, "true"), strings.EqualFold(s, "false"):
		return strings.ToLower(s)
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	return nil
}

// QuoteLiteral wraps s as a SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// isWrapped reports whether s is enclosed in one matching pair of parentheses.
func isWrapped(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
				if depth == 0 && i != len(s)-1 {
					return false
				}
			}
		}
	}
	return depth == 0
}
