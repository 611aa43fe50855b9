// Package baseline implements non-parametric link-prediction scorers built
// from sparse co-occurrence and relation-similarity structures. All matrices
// are constructed once from a training triple set and never mutated.
package baseline

import (
	"fmt"

	"github.com/weiweivv2222/pykeen/core/sparse"
	"github.com/weiweivv2222/pykeen/core/triples"
)

// Role selects a triple column for co-occurrence counting.
type Role int

const (
	RoleHead Role = iota
	RoleRelation
	RoleTail
)

var roleNames = map[Role]string{
	RoleHead:     "head",
	RoleRelation: "relation",
	RoleTail:     "tail",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func roleValue(t triples.Triple, r Role) int {
	switch r {
	case RoleHead:
		return int(t.Head)
	case RoleTail:
		return int(t.Tail)
	default:
		return int(t.Relation)
	}
}

func roleDim(f *triples.Factory, r Role) int {
	if r == RoleRelation {
		return f.NumRelations
	}
	return f.NumEntities
}

// Cooccurrence builds the sparse count matrix linking the row role to the
// column role over all triples in the factory. Duplicate pairs accumulate.
// With normalize set, each row is L1-normalized; rows with zero mass stay
// all-zero.
func Cooccurrence(f *triples.Factory, rowRole, colRole Role, normalize bool) (*sparse.CSR, error) {
	if rowRole == colRole {
		return nil, fmt.Errorf("cooccurrence over %s: %w", rowRole, ErrInvalidRole)
	}
	acc := sparse.NewCOO(roleDim(f, rowRole), roleDim(f, colRole))
	for _, t := range f.Triples {
		acc.Add(roleValue(t, rowRole), roleValue(t, colRole), 1)
	}
	m := acc.ToCSR()
	if normalize {
		m = m.NormalizeRowsL1()
	}
	return m, nil
}
