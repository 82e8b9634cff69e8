package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/domain"
)

func TestCompile(t *testing.T) {
	t.Run("unconditional grant compiles to always-true with optional join", func(t *testing.T) {
		model := access.NewPermissionModel(1, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrain},
		})

		filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)

		require.NoError(t, err)
		assert.False(t, filter.Denied)
		assert.Equal(t, access.JoinOptional, filter.Join)

		sql, args, err := access.RenderSQL(filter.Predicate, "t")
		require.NoError(t, err)
		assert.Equal(t, "TRUE", sql)
		assert.Empty(t, args)
	})

	t.Run("no matching grant denies", func(t *testing.T) {
		model := access.NewPermissionModel(1, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectStation},
		})

		filter, err := access.Compile(model, access.SubjectTrainRun, access.ActionRead)

		require.NoError(t, err)
		assert.True(t, filter.Denied)
	})

	t.Run("read grant does not satisfy manage", func(t *testing.T) {
		model := access.NewPermissionModel(1, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrainRun},
		})

		filter, err := access.Compile(model, access.SubjectTrainRun, access.ActionManage)

		require.NoError(t, err)
		assert.True(t, filter.Denied)
	})

	t.Run("manage grant satisfies read", func(t *testing.T) {
		model := access.NewPermissionModel(1, []access.Grant{
			{Action: access.ActionManage, Subject: access.SubjectTrainRun},
		})

		filter, err := access.Compile(model, access.SubjectTrainRun, access.ActionRead)

		require.NoError(t, err)
		assert.False(t, filter.Denied)
		assert.Equal(t, access.JoinOptional, filter.Join)
	})

	t.Run("wildcard subject matches everything", func(t *testing.T) {
		model := access.NewPermissionModel(1, []access.Grant{
			{Action: access.ActionManage, Subject: access.SubjectAll},
		})

		for _, subject := range []access.Subject{
			access.SubjectTrain, access.SubjectTrainRun, access.SubjectLine, access.SubjectStation,
		} {
			filter, err := access.Compile(model, subject, access.ActionManage)
			require.NoError(t, err)
			assert.False(t, filter.Denied)
			assert.Equal(t, access.JoinOptional, filter.Join)
		}
	})

	t.Run("conditional grant compiles to equality with required join", func(t *testing.T) {
		model := access.NewPermissionModel(7, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrain, Conditions: map[string]any{"ownerUserId": int64(7)}},
		})

		filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)

		require.NoError(t, err)
		assert.False(t, filter.Denied)
		assert.Equal(t, access.JoinRequired, filter.Join)

		sql, args, err := access.RenderSQL(filter.Predicate, "ut")
		require.NoError(t, err)
		assert.Equal(t, "ut.owner_user_id = ?", sql)
		assert.Equal(t, []any{int64(7)}, args)
	})

	t.Run("multiple conditional grants OR together", func(t *testing.T) {
		model := access.NewPermissionModel(7, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrainRun, Conditions: map[string]any{"ownerUserId": int64(7)}},
			{Action: access.ActionManage, Subject: access.SubjectTrainRun, Conditions: map[string]any{"trainId": int64(3)}},
		})

		filter, err := access.Compile(model, access.SubjectTrainRun, access.ActionRead)

		require.NoError(t, err)
		assert.Equal(t, access.JoinRequired, filter.Join)

		sql, args, err := access.RenderSQL(filter.Predicate, "r")
		require.NoError(t, err)
		assert.Equal(t, "(r.owner_user_id = ? OR r.train_id = ?)", sql)
		assert.Equal(t, []any{int64(7), int64(3)}, args)
	})

	t.Run("conditions within a grant AND together in key order", func(t *testing.T) {
		model := access.NewPermissionModel(7, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrainRun, Conditions: map[string]any{
				"trainId":     int64(3),
				"ownerUserId": int64(7),
			}},
		})

		// compile repeatedly: the rendering must not depend on map order
		for i := 0; i < 10; i++ {
			filter, err := access.Compile(model, access.SubjectTrainRun, access.ActionRead)
			require.NoError(t, err)

			sql, args, err := access.RenderSQL(filter.Predicate, "")
			require.NoError(t, err)
			assert.Equal(t, "(owner_user_id = ? AND train_id = ?)", sql)
			assert.Equal(t, []any{int64(7), int64(3)}, args)
		}
	})

	t.Run("unconditional grant wins over conditional ones", func(t *testing.T) {
		model := access.NewPermissionModel(7, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrain, Conditions: map[string]any{"ownerUserId": int64(7)}},
			{Action: access.ActionManage, Subject: access.SubjectAll},
		})

		filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)

		require.NoError(t, err)
		assert.Equal(t, access.JoinOptional, filter.Join)
		sql, _, err := access.RenderSQL(filter.Predicate, "")
		require.NoError(t, err)
		assert.Equal(t, "TRUE", sql)
	})

	t.Run("unknown condition field is a configuration error", func(t *testing.T) {
		model := access.NewPermissionModel(7, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrain, Conditions: map[string]any{"secretField": 1}},
		})

		filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)

		require.Error(t, err)
		assert.Nil(t, filter)
		var malformed *access.ErrMalformedGrant
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "secretField", malformed.Field)
	})

	t.Run("non-scalar condition value is a configuration error", func(t *testing.T) {
		model := access.NewPermissionModel(7, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrain, Conditions: map[string]any{
				"ownerUserId": []int64{7, 9},
			}},
		})

		filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)

		require.Error(t, err)
		assert.Nil(t, filter)
		var malformed *access.ErrMalformedGrant
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("nil model denies", func(t *testing.T) {
		filter, err := access.Compile(nil, access.SubjectTrain, access.ActionRead)

		require.NoError(t, err)
		assert.True(t, filter.Denied)
	})
}

func TestForUser(t *testing.T) {
	role := func(name string) *domain.User {
		return &domain.User{ID: 42, Role: &domain.Role{ID: 1, Name: name}}
	}

	t.Run("editor sees only own trains and runs", func(t *testing.T) {
		model := access.ForUser(role(domain.RoleEditor))
		require.NotNil(t, model)

		filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)
		require.NoError(t, err)
		assert.Equal(t, access.JoinRequired, filter.Join)

		filter, err = access.Compile(model, access.SubjectTrainRun, access.ActionManage)
		require.NoError(t, err)
		assert.Equal(t, access.JoinRequired, filter.Join)
		sql, args, err := access.RenderSQL(filter.Predicate, "")
		require.NoError(t, err)
		assert.Equal(t, "owner_user_id = ?", sql)
		assert.Equal(t, []any{int64(42)}, args)

		// editors cannot manage stations
		filter, err = access.Compile(model, access.SubjectStation, access.ActionManage)
		require.NoError(t, err)
		assert.True(t, filter.Denied)
	})

	t.Run("plain user reads everything, manages nothing", func(t *testing.T) {
		model := access.ForUser(role(domain.RoleUser))
		require.NotNil(t, model)

		filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)
		require.NoError(t, err)
		assert.False(t, filter.Denied)
		assert.Equal(t, access.JoinOptional, filter.Join)

		filter, err = access.Compile(model, access.SubjectTrain, access.ActionManage)
		require.NoError(t, err)
		assert.True(t, filter.Denied)
	})

	t.Run("admin manages everything", func(t *testing.T) {
		model := access.ForUser(role(domain.RoleAdmin))
		require.NotNil(t, model)

		filter, err := access.Compile(model, access.SubjectLine, access.ActionManage)
		require.NoError(t, err)
		assert.False(t, filter.Denied)
	})

	t.Run("unknown role yields no model", func(t *testing.T) {
		assert.Nil(t, access.ForUser(role("intruder")))
		assert.Nil(t, access.ForUser(&domain.User{ID: 9}))
		assert.Nil(t, access.ForUser(nil))
	})
}
