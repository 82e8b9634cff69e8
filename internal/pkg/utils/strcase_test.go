package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/train-schedule-microservice/internal/pkg/utils"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"id":          "id",
		"number":      "number",
		"ownerUserId": "owner_user_id",
		"trainId":     "train_id",
		"ID":          "i_d",
	}
	for in, want := range cases {
		assert.Equal(t, want, utils.ToSnakeCase(in), "input %q", in)
	}
}
