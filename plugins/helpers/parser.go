// Package helpers contains shared helpers for minerhub systems.
package helpers

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/savaki/jq"
)

// ISensorParser describes derived sensors expressions parser.
type ISensorParser interface {
	Compile(expression string) (ISensorExpression, error)
}

// ISensorExpression descries single pre-compiled expression.
type ISensorExpression interface {
	Vars() []string
	Evaluate(params map[string]*float64) (*float64, error)
}

// Parser implementation.
type parser struct {
	functions map[string]govaluate.ExpressionFunction
}

// Parser expression.
type parserExpression struct {
	expression *govaluate.EvaluableExpression
}

// NewParser constructs a new expressions parser.
func NewParser() ISensorParser {
	p := &parser{
		functions: map[string]govaluate.ExpressionFunction{
			"jq":  jqParse,
			"num": float64Convert,
		},
	}

	return p
}

// Compile tries to pre-compile expression.
func (p *parser) Compile(expression string) (ISensorExpression, error) {
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(expression, p.functions)
	if err != nil {
		return nil, err
	}

	return &parserExpression{
		expression: exp,
	}, nil
}

// Vars returns all variables used by expression.
func (p *parserExpression) Vars() []string {
	return p.expression.Vars()
}

// Evaluate calculates expression value.
// Nil is returned if any of the used variables is unknown.
func (p *parserExpression) Evaluate(params map[string]*float64) (*float64, error) {
	values := make(map[string]interface{}, len(params))
	for _, v := range p.expression.Vars() {
		val, ok := params[v]
		if !ok || nil == val {
			return nil, nil
		}

		values[v] = *val
	}

	data, err := p.expression.Evaluate(values)
	if err != nil {
		return nil, err
	}

	f, ok := data.(float64)
	if !ok {
		return nil, errors.New("expression didn't return a number")
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, nil
	}

	return &f, nil
}

// If only one param is supplied, returns un-marshaled json object.
// If two params are supplied, regular JQ syntax is used.
func jqParse(arguments ...interface{}) (interface{}, error) {
	if 0 == len(arguments) {
		return nil, errors.New("not enough arguments")
	}

	arg1, ok := arguments[0].(string)
	if !ok {
		return nil, errors.New("first argument is not a string")
	}

	if 1 == len(arguments) {
		data := make(map[string]interface{})
		err := json.Unmarshal([]byte(arg1), &data)
		if err != nil {
			return nil, err
		}

		return data, nil
	}

	if 2 == len(arguments) {
		arg2, ok := arguments[1].(string)
		if !ok {
			return nil, errors.New("second argument is not a string")
		}

		val, err := JQ([]byte(arg1), arg2)
		if err != nil {
			return nil, err
		}

		return strings.Trim(string(val), "\""), nil
	}

	return nil, errors.New("too many arguments")
}

// JQ applies jq selector to the json payload.
func JQ(payload []byte, selector string) ([]byte, error) {
	op, err := jq.Parse(selector)
	if err != nil {
		return nil, errors.New("failed to parse jq syntax")
	}

	val, err := op.Apply(payload)
	if err != nil {
		return nil, errors.New("failed to apply jq")
	}

	return val, nil
}

// Converts input param into float.
func float64Convert(arguments ...interface{}) (interface{}, error) {
	if 1 != len(arguments) {
		return nil, errors.New("wrong arguments")
	}

	if reflect.TypeOf(arguments[0]).Kind() == reflect.String {
		v, err := strconv.ParseFloat(arguments[0].(string), 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	a, ok := arguments[0].(float64)
	if !ok {
		return nil, errors.New("not compatible with float type")
	}

	return a, nil
}
