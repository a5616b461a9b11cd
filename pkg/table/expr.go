package table

import "fmt"

// Env is the evaluation context handed to expressions and predicates: one
// row of a table plus the partition that row belongs to. For an ungrouped
// table the partition spans every row.
type Env struct {
	t     *Table
	row   int
	group []int
	pos   int
}

// Value returns the current row's cell in the named column.
func (e *Env) Value(col string) (Value, error) {
	return e.t.Value(e.row, col)
}

// groupValues returns the named column's cells across the current
// partition, in row order.
func (e *Env) groupValues(col string) ([]Value, error) {
	j, err := e.t.colIndex(col)
	if err != nil {
		return nil, err
	}
	vals := make([]Value, len(e.group))
	for k, i := range e.group {
		vals[k] = e.t.rows[i][j]
	}
	return vals, nil
}

// Expr computes a scalar from the current row and its group scope.
type Expr func(*Env) (Value, error)

// Pred computes a three-valued condition from the current row and its
// group scope.
type Pred func(*Env) (Tri, error)

// Col references a column by name. Evaluation fails with ErrColumnNotFound
// when the column does not exist; it never silently yields missing.
func Col(name string) Expr {
	return func(e *Env) (Value, error) {
		return e.Value(name)
	}
}

// Lit is a constant expression.
func Lit(v Value) Expr {
	return func(*Env) (Value, error) { return v, nil }
}

// Arithmetic over numbers. A missing operand yields missing; non-numeric
// operands are ErrTypeMismatch.

func Add(a, b Expr) Expr { return arith(a, b, "+", func(x, y float64) float64 { return x + y }) }
func Sub(a, b Expr) Expr { return arith(a, b, "-", func(x, y float64) float64 { return x - y }) }
func Mul(a, b Expr) Expr { return arith(a, b, "*", func(x, y float64) float64 { return x * y }) }
func Div(a, b Expr) Expr { return arith(a, b, "/", func(x, y float64) float64 { return x / y }) }

func arith(a, b Expr, op string, f func(x, y float64) float64) Expr {
	return func(e *Env) (Value, error) {
		av, err := a(e)
		if err != nil {
			return Missing(), err
		}
		bv, err := b(e)
		if err != nil {
			return Missing(), err
		}
		if av.IsMissing() || bv.IsMissing() {
			return Missing(), nil
		}
		if av.Kind() != KindNumber || bv.Kind() != KindNumber {
			return Missing(), fmt.Errorf("%s over %s and %s: %w", op, av.Kind(), bv.Kind(), ErrTypeMismatch)
		}
		return Number(f(av.Num(), bv.Num())), nil
	}
}

// Comparison predicates. A missing operand yields Unknown; comparing
// incompatible kinds is ErrTypeMismatch.

func Eq(a, b Expr) Pred {
	return func(e *Env) (Tri, error) {
		av, bv, err := evalPair(e, a, b)
		if err != nil {
			return Unknown, err
		}
		return av.Equal(bv)
	}
}

func Ne(a, b Expr) Pred { return Not(Eq(a, b)) }

func Lt(a, b Expr) Pred {
	return func(e *Env) (Tri, error) {
		av, bv, err := evalPair(e, a, b)
		if err != nil {
			return Unknown, err
		}
		return av.Less(bv)
	}
}

func Gt(a, b Expr) Pred { return Lt(b, a) }
func Le(a, b Expr) Pred { return Not(Lt(b, a)) }
func Ge(a, b Expr) Pred { return Not(Lt(a, b)) }

func evalPair(e *Env, a, b Expr) (Value, Value, error) {
	av, err := a(e)
	if err != nil {
		return Missing(), Missing(), err
	}
	bv, err := b(e)
	if err != nil {
		return Missing(), Missing(), err
	}
	return av, bv, nil
}

// And conjoins predicates under Kleene logic.
func And(preds ...Pred) Pred {
	return func(e *Env) (Tri, error) {
		out := True
		for _, p := range preds {
			r, err := p(e)
			if err != nil {
				return Unknown, err
			}
			out = out.And(r)
			if out == False {
				return False, nil
			}
		}
		return out, nil
	}
}

// Or disjoins predicates under Kleene logic.
func Or(preds ...Pred) Pred {
	return func(e *Env) (Tri, error) {
		out := False
		for _, p := range preds {
			r, err := p(e)
			if err != nil {
				return Unknown, err
			}
			out = out.Or(r)
			if out == True {
				return True, nil
			}
		}
		return out, nil
	}
}

// Not negates a predicate under Kleene logic: Unknown stays Unknown.
func Not(p Pred) Pred {
	return func(e *Env) (Tri, error) {
		r, err := p(e)
		if err != nil {
			return Unknown, err
		}
		return r.Negate(), nil
	}
}

// IsMissing is definitely true or false, never Unknown: it tests the
// marker itself rather than comparing against it.
func IsMissing(x Expr) Pred {
	return func(e *Env) (Tri, error) {
		v, err := x(e)
		if err != nil {
			return Unknown, err
		}
		return fromBool(v.IsMissing()), nil
	}
}

// RowNumber is the 1-based position of the current row within its group
// (within the whole table when ungrouped).
func RowNumber() Expr {
	return func(e *Env) (Value, error) {
		return Number(float64(e.pos + 1)), nil
	}
}

// Group-scoped aggregate expressions, usable inside Filter and Mutate.
// They compute over the current row's partition and skip missing cells;
// a partition with no non-missing cell yields missing.

// GroupMin is the minimum of the named column within the current group.
func GroupMin(col string) Expr { return groupAgg(col, aggMin) }

// GroupMax is the maximum of the named column within the current group.
func GroupMax(col string) Expr { return groupAgg(col, aggMax) }

// GroupSum is the sum of the named numeric column within the current group.
func GroupSum(col string) Expr { return groupAgg(col, aggSum) }

// GroupMean is the mean of the named numeric column within the current group.
func GroupMean(col string) Expr { return groupAgg(col, aggMean) }

// GroupCount is the number of rows in the current group.
func GroupCount() Expr {
	return func(e *Env) (Value, error) {
		return Number(float64(len(e.group))), nil
	}
}

func groupAgg(col string, fn func([]Value) (Value, error)) Expr {
	return func(e *Env) (Value, error) {
		vals, err := e.groupValues(col)
		if err != nil {
			return Missing(), err
		}
		kept := vals[:0:0]
		for _, v := range vals {
			if !v.IsMissing() {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			return Missing(), nil
		}
		v, err := fn(kept)
		if err != nil {
			return Missing(), fmt.Errorf("column %q: %w", col, err)
		}
		return v, nil
	}
}
