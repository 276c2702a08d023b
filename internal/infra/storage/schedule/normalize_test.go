package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
)

func TestDecodeWeekConfigCurrentShape(t *testing.T) {
	data := []byte(`{
		"monday": {"enabled": true, "ranges": [
			{"start": "09:00", "end": "12:00"},
			{"start": "17:00", "end": "21:00"}
		]},
		"sunday": {"enabled": false, "ranges": []}
	}`)

	week, err := decodeWeekConfig(data)
	require.NoError(t, err)

	require.Len(t, week.Monday.Ranges, 2)
	assert.True(t, week.Monday.Enabled)
	assert.Equal(t, "09:00", week.Monday.Ranges[0].Start.String())
	assert.Equal(t, "21:00", week.Monday.Ranges[1].End.String())

	assert.False(t, week.Sunday.Enabled)
	assert.Empty(t, week.Sunday.Ranges)

	// Отсутствующие дни приходят выключенными с пустым списком диапазонов
	assert.False(t, week.Tuesday.Enabled)
	assert.NotNil(t, week.Tuesday.Ranges)
}

func TestDecodeWeekConfigLegacySingleRangeShape(t *testing.T) {
	data := []byte(`{
		"monday": {"enabled": true, "start": "10:00", "end": "18:00"},
		"tuesday": {"enabled": false, "start": "10:00", "end": "18:00"}
	}`)

	week, err := decodeWeekConfig(data)
	require.NoError(t, err)

	require.Len(t, week.Monday.Ranges, 1)
	assert.Equal(t, domain.TimeRange{Start: "10:00", End: "18:00"}, week.Monday.Ranges[0])

	// Выключенный день сохраняет диапазон, но enabled=false
	assert.False(t, week.Tuesday.Enabled)
	require.Len(t, week.Tuesday.Ranges, 1)
}

func TestDecodeWeekConfigRangesWinOverLegacyFields(t *testing.T) {
	data := []byte(`{
		"friday": {"enabled": true, "start": "08:00", "end": "20:00",
			"ranges": [{"start": "09:00", "end": "13:00"}]}
	}`)

	week, err := decodeWeekConfig(data)
	require.NoError(t, err)

	require.Len(t, week.Friday.Ranges, 1)
	assert.Equal(t, "09:00", week.Friday.Ranges[0].Start.String())
}

func TestDecodeWeekConfigMalformed(t *testing.T) {
	_, err := decodeWeekConfig([]byte(`{"monday": "nope"`))
	assert.ErrorIs(t, err, ErrDecodeWeekConfig)
}

func TestEncodeWeekConfigRoundTrip(t *testing.T) {
	week := domain.WeekSchedule{
		Wednesday: domain.DaySchedule{
			Enabled: true,
			Ranges:  []domain.TimeRange{{Start: "09:30", End: "14:00"}},
		},
	}

	data, err := encodeWeekConfig(week)
	require.NoError(t, err)

	decoded, err := decodeWeekConfig(data)
	require.NoError(t, err)
	assert.Equal(t, week.Wednesday.Ranges, decoded.Wednesday.Ranges)

	// Сериализация всегда пишет текущую форму с массивом ranges
	assert.Contains(t, string(data), `"ranges"`)
}
