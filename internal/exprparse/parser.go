// Package exprparse parses the small expression language the sift CLI
// accepts on the command line and turns it into table expressions,
// predicates, sort keys, assignments, and aggregations.
//
// The language has arithmetic over columns and literals, comparisons,
// three-valued boolean connectives, and a handful of functions:
//
//	age >= 65 && !missing(name)
//	share = weeks / sum(weeks)
//	n = count(), avg = mean(weeks, drop)
//
// Identifiers name columns; strings use single or double quotes.
package exprparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/sift/pkg/table"
)

// ErrSyntax wraps every parse failure.
var ErrSyntax = errors.New("syntax error")

// Parser is a recursive-descent parser over the lexer's token stream.
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

// NewParser returns a parser over input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.Next()
}

func (p *Parser) expect(tt TokenType, what string) error {
	if p.cur.Type != tt {
		return fmt.Errorf("expected %s, got %s: %w", what, p.cur, ErrSyntax)
	}
	p.next()
	return nil
}

// node is either an expression or a predicate, depending on which parse
// production built it.
type node struct {
	expr table.Expr
	pred table.Pred
}

// asPred returns the node as a predicate. A value expression is coerced
// by testing it against true, so a bare bool column works as a condition:
// missing yields Unknown and a non-bool value is a type mismatch.
func (n node) asPred() (table.Pred, error) {
	if n.pred != nil {
		return n.pred, nil
	}
	if n.expr != nil {
		return table.Eq(n.expr, table.Lit(table.Bool(true))), nil
	}
	return nil, fmt.Errorf("expected a condition: %w", ErrSyntax)
}

func (n node) asExpr() (table.Expr, error) {
	if n.expr == nil {
		return nil, fmt.Errorf("expected a value expression, got a condition: %w", ErrSyntax)
	}
	return n.expr, nil
}

// ParsePred parses input as a three-valued predicate.
func ParsePred(input string) (table.Pred, error) {
	p := NewParser(input)
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != EOF {
		return nil, fmt.Errorf("trailing input at %s: %w", p.cur, ErrSyntax)
	}
	return n.asPred()
}

// ParseExpr parses input as a value expression.
func ParseExpr(input string) (table.Expr, error) {
	p := NewParser(input)
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != EOF {
		return nil, fmt.Errorf("trailing input at %s: %w", p.cur, ErrSyntax)
	}
	return n.asExpr()
}

// ParseAssignments parses a comma-separated list of "name = expr" clauses.
func ParseAssignments(input string) ([]table.Assignment, error) {
	p := NewParser(input)
	var out []table.Assignment
	for {
		if p.cur.Type != Identifier {
			return nil, fmt.Errorf("expected column name, got %s: %w", p.cur, ErrSyntax)
		}
		name := p.cur.Value
		p.next()
		if err := p.expect(Assign, `"="`); err != nil {
			return nil, err
		}
		n, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		expr, err := n.asExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, table.Assign(name, expr))

		if p.cur.Type == EOF {
			return out, nil
		}
		if err := p.expect(Comma, `","`); err != nil {
			return nil, err
		}
	}
}

// ParseAggregations parses a comma-separated list of "name = fn(col)"
// clauses. Supported functions: count(), sum, mean, avg, median, min, max,
// first, n_distinct. A trailing "drop" argument makes the aggregate skip
// missing cells: "avg = mean(weeks, drop)".
func ParseAggregations(input string) ([]table.Aggregation, error) {
	p := NewParser(input)
	var out []table.Aggregation
	for {
		if p.cur.Type != Identifier {
			return nil, fmt.Errorf("expected aggregate name, got %s: %w", p.cur, ErrSyntax)
		}
		name := p.cur.Value
		p.next()
		if err := p.expect(Assign, `"="`); err != nil {
			return nil, err
		}
		agg, err := p.parseAggregation(name)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)

		if p.cur.Type == EOF {
			return out, nil
		}
		if err := p.expect(Comma, `","`); err != nil {
			return nil, err
		}
	}
}

// ParseSortKeys parses a comma-separated column list; a "-" prefix marks a
// descending key: "race,-weeks".
func ParseSortKeys(input string) ([]table.SortKey, error) {
	var out []table.SortKey
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "-") {
			part = strings.TrimSpace(strings.TrimPrefix(part, "-"))
			if part == "" {
				return nil, fmt.Errorf("empty sort column: %w", ErrSyntax)
			}
			out = append(out, table.Desc(part))
			continue
		}
		if part == "" {
			return nil, fmt.Errorf("empty sort column: %w", ErrSyntax)
		}
		out = append(out, table.Asc(part))
	}
	return out, nil
}

func (p *Parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return node{}, err
	}
	for p.cur.Type == Or {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return node{}, err
		}
		lp, err := left.asPred()
		if err != nil {
			return node{}, err
		}
		rp, err := right.asPred()
		if err != nil {
			return node{}, err
		}
		left = node{pred: table.Or(lp, rp)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return node{}, err
	}
	for p.cur.Type == And {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return node{}, err
		}
		lp, err := left.asPred()
		if err != nil {
			return node{}, err
		}
		rp, err := right.asPred()
		if err != nil {
			return node{}, err
		}
		left = node{pred: table.And(lp, rp)}
	}
	return left, nil
}

func (p *Parser) parseNot() (node, error) {
	if p.cur.Type == Not {
		p.next()
		n, err := p.parseNot()
		if err != nil {
			return node{}, err
		}
		pr, err := n.asPred()
		if err != nil {
			return node{}, err
		}
		return node{pred: table.Not(pr)}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (node, error) {
	left, err := p.parseSum()
	if err != nil {
		return node{}, err
	}

	var cmp func(a, b table.Expr) table.Pred
	switch p.cur.Type {
	case Equals:
		cmp = table.Eq
	case NotEquals:
		cmp = table.Ne
	case LessThan:
		cmp = table.Lt
	case LessThanOrEqual:
		cmp = table.Le
	case GreaterThan:
		cmp = table.Gt
	case GreaterThanOrEqual:
		cmp = table.Ge
	default:
		return left, nil
	}
	p.next()

	right, err := p.parseSum()
	if err != nil {
		return node{}, err
	}
	le, err := left.asExpr()
	if err != nil {
		return node{}, err
	}
	re, err := right.asExpr()
	if err != nil {
		return node{}, err
	}
	return node{pred: cmp(le, re)}, nil
}

func (p *Parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return node{}, err
	}
	for p.cur.Type == Plus || p.cur.Type == Minus {
		op := p.cur.Type
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return node{}, err
		}
		le, err := left.asExpr()
		if err != nil {
			return node{}, err
		}
		re, err := right.asExpr()
		if err != nil {
			return node{}, err
		}
		if op == Plus {
			left = node{expr: table.Add(le, re)}
		} else {
			left = node{expr: table.Sub(le, re)}
		}
	}
	return left, nil
}

func (p *Parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return node{}, err
	}
	for p.cur.Type == Star || p.cur.Type == Slash {
		op := p.cur.Type
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return node{}, err
		}
		le, err := left.asExpr()
		if err != nil {
			return node{}, err
		}
		re, err := right.asExpr()
		if err != nil {
			return node{}, err
		}
		if op == Star {
			left = node{expr: table.Mul(le, re)}
		} else {
			left = node{expr: table.Div(le, re)}
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (node, error) {
	if p.cur.Type == Minus {
		p.next()
		n, err := p.parseUnary()
		if err != nil {
			return node{}, err
		}
		e, err := n.asExpr()
		if err != nil {
			return node{}, err
		}
		return node{expr: table.Sub(table.Lit(table.Number(0)), e)}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (node, error) {
	switch p.cur.Type {
	case Number:
		f, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			return node{}, fmt.Errorf("number %q: %w", p.cur.Value, ErrSyntax)
		}
		p.next()
		return node{expr: table.Lit(table.Number(f))}, nil
	case String:
		v := p.cur.Value
		p.next()
		return node{expr: table.Lit(table.Text(v))}, nil
	case True:
		p.next()
		return node{expr: table.Lit(table.Bool(true))}, nil
	case False:
		p.next()
		return node{expr: table.Lit(table.Bool(false))}, nil
	case ParenOpen:
		p.next()
		n, err := p.parseOr()
		if err != nil {
			return node{}, err
		}
		if err := p.expect(ParenClose, `")"`); err != nil {
			return node{}, err
		}
		return n, nil
	case Identifier:
		name := p.cur.Value
		if p.peek.Type == ParenOpen {
			p.next()
			return p.parseCall(name)
		}
		p.next()
		return node{expr: table.Col(name)}, nil
	default:
		return node{}, fmt.Errorf("unexpected %s: %w", p.cur, ErrSyntax)
	}
}

// parseCall handles function syntax. cur is positioned on "(".
func (p *Parser) parseCall(name string) (node, error) {
	if err := p.expect(ParenOpen, `"("`); err != nil {
		return node{}, err
	}

	switch strings.ToLower(name) {
	case "missing":
		n, err := p.parseSum()
		if err != nil {
			return node{}, err
		}
		e, err := n.asExpr()
		if err != nil {
			return node{}, err
		}
		if err := p.expect(ParenClose, `")"`); err != nil {
			return node{}, err
		}
		return node{pred: table.IsMissing(e)}, nil
	case "row_number":
		if err := p.expect(ParenClose, `")"`); err != nil {
			return node{}, err
		}
		return node{expr: table.RowNumber()}, nil
	case "count":
		if err := p.expect(ParenClose, `")"`); err != nil {
			return node{}, err
		}
		return node{expr: table.GroupCount()}, nil
	case "min", "max", "sum", "mean", "avg":
		col, err := p.parseColumnArg()
		if err != nil {
			return node{}, err
		}
		if err := p.expect(ParenClose, `")"`); err != nil {
			return node{}, err
		}
		switch strings.ToLower(name) {
		case "min":
			return node{expr: table.GroupMin(col)}, nil
		case "max":
			return node{expr: table.GroupMax(col)}, nil
		case "sum":
			return node{expr: table.GroupSum(col)}, nil
		default:
			return node{expr: table.GroupMean(col)}, nil
		}
	default:
		return node{}, fmt.Errorf("unknown function %q: %w", name, ErrSyntax)
	}
}

func (p *Parser) parseColumnArg() (string, error) {
	if p.cur.Type != Identifier {
		return "", fmt.Errorf("expected column name, got %s: %w", p.cur, ErrSyntax)
	}
	col := p.cur.Value
	p.next()
	return col, nil
}

// parseAggregation handles "fn(col)" on the right of an aggregate clause.
func (p *Parser) parseAggregation(name string) (table.Aggregation, error) {
	var zero table.Aggregation
	if p.cur.Type != Identifier {
		return zero, fmt.Errorf("expected aggregate function, got %s: %w", p.cur, ErrSyntax)
	}
	fn := strings.ToLower(p.cur.Value)
	p.next()
	if err := p.expect(ParenOpen, `"("`); err != nil {
		return zero, err
	}

	if fn == "count" {
		if err := p.expect(ParenClose, `")"`); err != nil {
			return zero, err
		}
		return table.Count(name), nil
	}

	col, err := p.parseColumnArg()
	if err != nil {
		return zero, err
	}
	var opts []table.AggOption
	if p.cur.Type == Comma {
		p.next()
		if p.cur.Type != Identifier || strings.ToLower(p.cur.Value) != "drop" {
			return zero, fmt.Errorf(`expected "drop", got %s: %w`, p.cur, ErrSyntax)
		}
		p.next()
		opts = append(opts, table.IgnoreMissing())
	}
	if err := p.expect(ParenClose, `")"`); err != nil {
		return zero, err
	}

	switch fn {
	case "sum":
		return table.Sum(name, col, opts...), nil
	case "mean", "avg":
		return table.Mean(name, col, opts...), nil
	case "median":
		return table.Median(name, col, opts...), nil
	case "min":
		return table.Min(name, col, opts...), nil
	case "max":
		return table.Max(name, col, opts...), nil
	case "first":
		return table.First(name, col, opts...), nil
	case "n_distinct":
		return table.NDistinct(name, col, opts...), nil
	default:
		return zero, fmt.Errorf("unknown aggregate %q: %w", fn, ErrSyntax)
	}
}
