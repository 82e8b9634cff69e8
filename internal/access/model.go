// Package access holds the per-request permission model and the compiler that
// turns its grants into relational query predicates.
package access

// Action is what a grant allows. ActionManage covers every action on its
// subject, ActionRead only reads.
type Action string

const (
	ActionRead   Action = "read"
	ActionManage Action = "manage"
)

// Subject is the entity type a grant applies to. SubjectAll matches every
// subject.
type Subject string

const (
	SubjectAll      Subject = "all"
	SubjectTrain    Subject = "Train"
	SubjectTrainRun Subject = "TrainRun"
	SubjectLine     Subject = "Line"
	SubjectStation  Subject = "Station"
)

// Grant is a single permission rule: an action, a subject and optional
// field-equality conditions restricting which rows it covers. Condition keys
// are camelCase field names of the subject entity.
type Grant struct {
	Action     Action
	Subject    Subject
	Conditions map[string]any
}

// PermissionModel is the immutable grant set attached to an authenticated
// request. It is built once by the authentication middleware and only read
// afterwards.
type PermissionModel struct {
	userID int64
	grants []Grant
}

// NewPermissionModel copies grants so later mutation of the input cannot leak
// into the model.
func NewPermissionModel(userID int64, grants []Grant) *PermissionModel {
	copied := make([]Grant, len(grants))
	copy(copied, grants)
	return &PermissionModel{userID: userID, grants: copied}
}

// UserID returns the authenticated user the model was built for.
func (m *PermissionModel) UserID() int64 {
	return m.userID
}

// GrantsFor returns the grants matching a subject/action pair. A grant
// matches when its subject is the requested one or SubjectAll, and its action
// is the requested one or ActionManage.
func (m *PermissionModel) GrantsFor(subject Subject, action Action) []Grant {
	if m == nil {
		return nil
	}
	var matched []Grant
	for _, g := range m.grants {
		if g.Subject != subject && g.Subject != SubjectAll {
			continue
		}
		if g.Action != action && g.Action != ActionManage {
			continue
		}
		matched = append(matched, g)
	}
	return matched
}
