package warehouse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParamType tags a bound value with the warehouse type it is sent as.
type ParamType int

const (
	ParamInt32 ParamType = iota + 1
	ParamString
)

func (t ParamType) String() string {
	switch t {
	case ParamInt32:
		return "Int32"
	case ParamString:
		return "String"
	default:
		return "ParamType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Param is one positional statement parameter.
type Param struct {
	Name  string
	Type  ParamType
	Value any
}

// Statement is SQL text plus its bound parameters. Text never carries caller
// values, only `?` placeholders.
type Statement struct {
	Text   string
	Params []Param
}

// Args returns the parameter values in placeholder order.
func (s Statement) Args() []any {
	args := make([]any, len(s.Params))
	for i, p := range s.Params {
		args[i] = p.Value
	}
	return args
}

// statementBuilder produces the statements for the users table.
type statementBuilder struct {
	table string
}

// Each part of a qualified name is an unquoted identifier.
var identifierPart = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// parseTable validates a name of the form [database.[schema.]]table.
func parseTable(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("users table name is required")
	}
	parts := strings.Split(name, ".")
	if len(parts) > 3 {
		return "", fmt.Errorf("table name %q has more than three parts", name)
	}
	for _, part := range parts {
		if !identifierPart.MatchString(part) {
			return "", fmt.Errorf("invalid identifier %q in table name %q", part, name)
		}
	}
	return name, nil
}

func newStatementBuilder(table string) (statementBuilder, error) {
	qualified, err := parseTable(table)
	if err != nil {
		return statementBuilder{}, err
	}
	return statementBuilder{table: qualified}, nil
}

func (b statementBuilder) list() Statement {
	return Statement{
		Text: "SELECT id, name, email, created_at FROM " + b.table,
	}
}

func (b statementBuilder) getByID(id int32) Statement {
	return Statement{
		Text:   "SELECT id, name, email, created_at FROM " + b.table + " WHERE id = ?",
		Params: []Param{int32Param("1", id)},
	}
}

func (b statementBuilder) insert(name, email string) Statement {
	return Statement{
		Text: "INSERT INTO " + b.table + " (name, email) VALUES (?, ?)",
		Params: []Param{
			stringParam("1", name),
			stringParam("2", email),
		},
	}
}

func (b statementBuilder) update(id int32, name, email string) Statement {
	return Statement{
		Text: "UPDATE " + b.table + " SET name = ?, email = ? WHERE id = ?",
		Params: []Param{
			stringParam("1", name),
			stringParam("2", email),
			int32Param("3", id),
		},
	}
}

func (b statementBuilder) delete(id int32) Statement {
	return Statement{
		Text:   "DELETE FROM " + b.table + " WHERE id = ?",
		Params: []Param{int32Param("1", id)},
	}
}

func int32Param(name string, v int32) Param {
	return Param{Name: name, Type: ParamInt32, Value: v}
}

func stringParam(name string, v string) Param {
	return Param{Name: name, Type: ParamString, Value: v}
}
