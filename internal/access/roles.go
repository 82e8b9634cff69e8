package access

import (
	"github.com/train-schedule-microservice/internal/domain"
)

// ForUser builds the permission model for an authenticated user from its
// role. Returns nil when the user has no role or an unknown one, which the
// middleware treats as an authentication failure.
func ForUser(user *domain.User) *PermissionModel {
	if user == nil || user.Role == nil {
		return nil
	}

	var grants []Grant
	switch user.Role.Name {
	case domain.RoleUser:
		grants = []Grant{
			{Action: ActionRead, Subject: SubjectTrain},
			{Action: ActionRead, Subject: SubjectTrainRun},
			{Action: ActionRead, Subject: SubjectLine},
			{Action: ActionRead, Subject: SubjectStation},
		}
	case domain.RoleEditor:
		grants = []Grant{
			{Action: ActionRead, Subject: SubjectStation},
			{Action: ActionRead, Subject: SubjectLine},
			{Action: ActionRead, Subject: SubjectTrain, Conditions: map[string]any{"ownerUserId": user.ID}},
			{Action: ActionManage, Subject: SubjectTrainRun, Conditions: map[string]any{"ownerUserId": user.ID}},
		}
	case domain.RoleModerator:
		grants = []Grant{
			{Action: ActionManage, Subject: SubjectTrain},
			{Action: ActionManage, Subject: SubjectTrainRun},
			{Action: ActionManage, Subject: SubjectLine},
			{Action: ActionManage, Subject: SubjectStation},
		}
	case domain.RoleAdmin:
		grants = []Grant{
			{Action: ActionManage, Subject: SubjectAll},
		}
	default:
		return nil
	}

	return NewPermissionModel(user.ID, grants)
}
