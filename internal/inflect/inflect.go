// Package inflect holds the naming conventions shared by the catalog and the
// snapshot engine. Table and column naming follow gorm's naming strategy.
package inflect

import (
	"strings"

	"github.com/gobuffalo/flect"
	"github.com/jinzhu/inflection"
	"gorm.io/gorm/schema"
)

var (
	naming    = schema.NamingStrategy{}
	separator = strings.NewReplacer("-", "_", " ", "_")
)

// Underscore converts CamelCase, camelCase, kebab-case and spaced words to
// lower snake_case: "HTTPHeader" -> "http_header".
func Underscore(s string) string {
	return naming.ColumnName("", separator.Replace(strings.TrimSpace(s)))
}

// Camelize converts snake_case to CamelCase.
func Camelize(s string) string {
	return flect.Pascalize(Underscore(s))
}

// Demodulize drops any namespace prefix: "ActiveModel::Validations::X" -> "X".
func Demodulize(s string) string {
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Tableize returns the conventional table name for a model name:
// "BlogPost" -> "blog_posts", "Admin::User" -> "users".
func Tableize(model string) string {
	return naming.TableName(Demodulize(model))
}

// Classify returns the conventional model name for an association name:
// "comments" -> "Comment", "author" -> "Author".
func Classify(name string) string {
	return Camelize(inflection.Singular(Underscore(name)))
}

// ForeignKey returns the conventional foreign key column for a model or
// association name: "User" -> "user_id".
func ForeignKey(name string) string {
	return Underscore(Demodulize(name)) + "_id"
}
