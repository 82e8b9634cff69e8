package access

import (
	"fmt"
)

// JoinMode tells the storage adapter whether the relation carrying the
// compiled predicate must match for a row to appear.
type JoinMode int

const (
	// JoinOptional keeps the root row even when the relation is absent
	// (outer join).
	JoinOptional JoinMode = iota
	// JoinRequired drops root rows whose relation does not satisfy the
	// predicate (inner join).
	JoinRequired
)

func (m JoinMode) String() string {
	if m == JoinRequired {
		return "required"
	}
	return "optional"
}

// ErrMalformedGrant wraps a grant that cannot be compiled: an unknown field
// name or a non-scalar condition value. It is a configuration fault, never a
// denial, so it must reach the caller instead of degrading to "no access".
type ErrMalformedGrant struct {
	Subject Subject
	Field   string
	Reason  string
}

func (e *ErrMalformedGrant) Error() string {
	return fmt.Sprintf("malformed grant for %s: field %q %s", e.Subject, e.Field, e.Reason)
}

// AccessFilter is the compiled form of a subject/action lookup against a
// permission model.
type AccessFilter struct {
	// Denied short-circuits the query: no grant matched, the caller must
	// return an empty result without touching the store.
	Denied bool
	// Predicate restricts the relation rows the caller may see. True when
	// an unconditional grant matched.
	Predicate Predicate
	// Join selects inner vs outer join for the relation the predicate
	// applies to.
	Join JoinMode
}

// conditionFields lists the fields grants may constrain, per subject. A field
// outside this set marks the grant as malformed.
var conditionFields = map[Subject]map[string]bool{
	SubjectTrain:    {"id": true, "number": true, "ownerUserId": true},
	SubjectTrainRun: {"id": true, "day": true, "trainId": true, "ownerUserId": true},
	SubjectLine:     {"id": true, "name": true},
	SubjectStation:  {"id": true, "name": true},
}

// Compile filters the model's grants for a subject/action pair and folds them
// into a single predicate: AND within a grant's conditions, OR across grants.
// A matching unconditional grant yields an always-true predicate with an
// optional join; only conditional matches force a required join. No match at
// all compiles to a denial.
func Compile(model *PermissionModel, subject Subject, action Action) (*AccessFilter, error) {
	grants := model.GrantsFor(subject, action)
	if len(grants) == 0 {
		return &AccessFilter{Denied: true, Predicate: False{}}, nil
	}

	var branches []Predicate
	for _, g := range grants {
		if len(g.Conditions) == 0 {
			// Unconditional grant: everything is visible, the relation
			// join stays permissive.
			return &AccessFilter{Predicate: True{}, Join: JoinOptional}, nil
		}
		if err := validateConditions(subject, g); err != nil {
			return nil, err
		}
		branches = append(branches, conjunctionOf(g.Conditions))
	}

	pred := branches[0]
	if len(branches) > 1 {
		pred = Or{Preds: branches}
	}
	return &AccessFilter{Predicate: pred, Join: JoinRequired}, nil
}

// validateConditions checks a grant's conditions against the subject being
// compiled, not the grant's own subject: a wildcard grant's conditions still
// have to name fields of the queried entity.
func validateConditions(subject Subject, g Grant) error {
	allowed := conditionFields[subject]
	for field, value := range g.Conditions {
		if allowed == nil || !allowed[field] {
			return &ErrMalformedGrant{Subject: subject, Field: field, Reason: "is not a known condition field"}
		}
		if !isScalar(value) {
			return &ErrMalformedGrant{Subject: subject, Field: field, Reason: fmt.Sprintf("has non-scalar value of type %T", value)}
		}
	}
	return nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
