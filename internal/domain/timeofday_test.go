package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/train-schedule-microservice/internal/domain"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("accepts HH:MM:SS", func(t *testing.T) {
		v, err := domain.ParseTimeOfDay("23:40:15")
		require.NoError(t, err)
		assert.Equal(t, "23:40:15", v.String())
	})

	t.Run("accepts HH:MM", func(t *testing.T) {
		v, err := domain.ParseTimeOfDay("08:05")
		require.NoError(t, err)
		assert.Equal(t, "08:05:00", v.String())
	})

	t.Run("rejects out of range values", func(t *testing.T) {
		for _, s := range []string{"24:00", "12:60", "-1:30", "garbage"} {
			_, err := domain.ParseTimeOfDay(s)
			assert.Error(t, err, s)
		}
	})
}

func TestTimeOfDay_JSON(t *testing.T) {
	v, err := domain.ParseTimeOfDay("09:30:00")
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"09:30:00"`, string(data))

	var back domain.TimeOfDay
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestTimeOfDay_Scan(t *testing.T) {
	t.Run("from string", func(t *testing.T) {
		var v domain.TimeOfDay
		require.NoError(t, v.Scan("14:25:09"))
		assert.Equal(t, "14:25:09", v.String())
	})

	t.Run("from time.Time", func(t *testing.T) {
		var v domain.TimeOfDay
		require.NoError(t, v.Scan(time.Date(0, 1, 1, 14, 25, 9, 0, time.UTC)))
		assert.Equal(t, "14:25:09", v.String())
	})

	t.Run("from microseconds", func(t *testing.T) {
		var v domain.TimeOfDay
		require.NoError(t, v.Scan(int64(9*3600*1e6)))
		assert.Equal(t, "09:00:00", v.String())
	})

	t.Run("rejects NULL", func(t *testing.T) {
		var v domain.TimeOfDay
		assert.Error(t, v.Scan(nil))
	})
}
