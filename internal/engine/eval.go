package engine

import (
	"minidb/internal/domain"
	"minidb/internal/minisql"
	"minidb/internal/storage/memstore"
)

// binding resolves column references against one row during evaluation.
type binding struct {
	table *memstore.Table
	row   []domain.Value
}

func (b *binding) value(name string) (domain.Value, error) {
	idx := b.table.ColumnIndex(name)
	if idx < 0 {
		return domain.Value{}, domain.ErrSemantic("column %q does not exist in table %q", name, b.table.Name)
	}
	return b.row[idx], nil
}

// evalValue evaluates an expression to a storable Value. The binding may be
// nil in constant contexts (INSERT VALUES), where column references are
// rejected. Conditions (comparisons, AND/OR/NOT) are not values.
func evalValue(expr minisql.Expr, b *binding) (domain.Value, error) {
	switch e := expr.(type) {
	case *minisql.Literal:
		switch e.Kind {
		case minisql.LiteralInteger:
			return domain.NewInteger(e.Int), nil
		case minisql.LiteralText:
			return domain.NewText(e.Text), nil
		default:
			return domain.Null(), nil
		}

	case *minisql.ColumnRef:
		if b == nil {
			return domain.Value{}, domain.ErrSemantic("column reference %q is not allowed here", e.Name)
		}
		return b.value(e.Name)

	case *minisql.ParenExpr:
		return evalValue(e.Expr, b)

	case *minisql.UnaryExpr:
		if e.Op == minisql.TOKEN_NOT {
			return domain.Value{}, domain.ErrSemantic("NOT produces a condition, not a value")
		}
		v, err := evalValue(e.Expr, b)
		if err != nil {
			return domain.Value{}, err
		}
		if v.Kind != domain.KindInteger {
			return domain.Value{}, domain.ErrSemantic("cannot apply unary %s to %s", e.Op, v.Kind)
		}
		if e.Op == minisql.TOKEN_MINUS {
			return domain.NewInteger(-v.Int), nil
		}
		return v, nil

	case *minisql.BinaryExpr:
		switch e.Op {
		case minisql.TOKEN_PLUS, minisql.TOKEN_MINUS, minisql.TOKEN_STAR, minisql.TOKEN_SLASH:
			return evalArithmetic(e, b)
		default:
			return domain.Value{}, domain.ErrSemantic("%s produces a condition, not a value", e.Op)
		}

	default:
		return domain.Value{}, domain.ErrSemantic("unsupported expression")
	}
}

// evalArithmetic applies + - * / to two INT operands. TEXT or NULL operands
// and division by zero are semantic errors. Division truncates toward zero.
func evalArithmetic(e *minisql.BinaryExpr, b *binding) (domain.Value, error) {
	left, err := evalValue(e.Left, b)
	if err != nil {
		return domain.Value{}, err
	}
	right, err := evalValue(e.Right, b)
	if err != nil {
		return domain.Value{}, err
	}
	if left.Kind != domain.KindInteger || right.Kind != domain.KindInteger {
		return domain.Value{}, domain.ErrSemantic("cannot apply %s to %s and %s", e.Op, left.Kind, right.Kind)
	}

	switch e.Op {
	case minisql.TOKEN_PLUS:
		return domain.NewInteger(left.Int + right.Int), nil
	case minisql.TOKEN_MINUS:
		return domain.NewInteger(left.Int - right.Int), nil
	case minisql.TOKEN_STAR:
		return domain.NewInteger(left.Int * right.Int), nil
	default: // TOKEN_SLASH
		if right.Int == 0 {
			return domain.Value{}, domain.ErrSemantic("division by zero")
		}
		return domain.NewInteger(left.Int / right.Int), nil
	}
}

// evalPredicate evaluates a condition to a bool. AND and OR short-circuit:
// the right operand is not evaluated once the left decides the result.
func evalPredicate(expr minisql.Expr, b *binding) (bool, error) {
	switch e := expr.(type) {
	case *minisql.ParenExpr:
		return evalPredicate(e.Expr, b)

	case *minisql.UnaryExpr:
		if e.Op != minisql.TOKEN_NOT {
			return false, domain.ErrSemantic("expression is not a condition")
		}
		v, err := evalPredicate(e.Expr, b)
		if err != nil {
			return false, err
		}
		return !v, nil

	case *minisql.BinaryExpr:
		switch e.Op {
		case minisql.TOKEN_AND:
			left, err := evalPredicate(e.Left, b)
			if err != nil {
				return false, err
			}
			if !left {
				return false, nil
			}
			return evalPredicate(e.Right, b)

		case minisql.TOKEN_OR:
			left, err := evalPredicate(e.Left, b)
			if err != nil {
				return false, err
			}
			if left {
				return true, nil
			}
			return evalPredicate(e.Right, b)

		case minisql.TOKEN_EQ, minisql.TOKEN_NE,
			minisql.TOKEN_LT, minisql.TOKEN_GT, minisql.TOKEN_LE, minisql.TOKEN_GE:
			return evalComparison(e, b)

		default:
			return false, domain.ErrSemantic("%s does not produce a condition", e.Op)
		}

	default:
		// Bare literals and column references are not conditions (WHERE 1).
		return false, domain.ErrSemantic("expression is not a condition")
	}
}

// evalComparison applies a comparison operator. Equality is defined for
// NULL (NULL equals only NULL); ordering a NULL or mixing INT with TEXT is
// a semantic error.
func evalComparison(e *minisql.BinaryExpr, b *binding) (bool, error) {
	left, err := evalValue(e.Left, b)
	if err != nil {
		return false, err
	}
	right, err := evalValue(e.Right, b)
	if err != nil {
		return false, err
	}

	switch e.Op {
	case minisql.TOKEN_EQ:
		return left.Equal(right)
	case minisql.TOKEN_NE:
		eq, err := left.Equal(right)
		if err != nil {
			return false, err
		}
		return !eq, nil
	default:
		cmp, err := left.Compare(right)
		if err != nil {
			return false, err
		}
		switch e.Op {
		case minisql.TOKEN_LT:
			return cmp < 0, nil
		case minisql.TOKEN_GT:
			return cmp > 0, nil
		case minisql.TOKEN_LE:
			return cmp <= 0, nil
		default: // TOKEN_GE
			return cmp >= 0, nil
		}
	}
}
