package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// rawDaySchedule принимает оба формата хранения дня недели:
// текущий {"enabled": true, "ranges": [{"start","end"}, ...]}
// и устаревший {"enabled": true, "start": "09:00", "end": "17:00"}
// с одним диапазоном на день.
//
// Нормализация выполняется только здесь, на границе хранилища: движок
// доступности всегда получает уже нормализованную форму с массивом ranges.
type rawDaySchedule struct {
	Enabled bool `json:"enabled"`

	Ranges []domain.TimeRange `json:"ranges,omitempty"`

	// Устаревшая форма с одним диапазоном
	Start *types.TimeString `json:"start,omitempty"`
	End   *types.TimeString `json:"end,omitempty"`
}

type rawWeekSchedule struct {
	Monday    rawDaySchedule `json:"monday"`
	Tuesday   rawDaySchedule `json:"tuesday"`
	Wednesday rawDaySchedule `json:"wednesday"`
	Thursday  rawDaySchedule `json:"thursday"`
	Friday    rawDaySchedule `json:"friday"`
	Saturday  rawDaySchedule `json:"saturday"`
	Sunday    rawDaySchedule `json:"sunday"`
}

// decodeWeekConfig разбирает JSONB колонку и нормализует устаревшую форму
func decodeWeekConfig(data []byte) (domain.WeekSchedule, error) {
	var raw rawWeekSchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.WeekSchedule{}, fmt.Errorf("%w: %v", ErrDecodeWeekConfig, err)
	}

	return domain.WeekSchedule{
		Monday:    normalizeDay(raw.Monday),
		Tuesday:   normalizeDay(raw.Tuesday),
		Wednesday: normalizeDay(raw.Wednesday),
		Thursday:  normalizeDay(raw.Thursday),
		Friday:    normalizeDay(raw.Friday),
		Saturday:  normalizeDay(raw.Saturday),
		Sunday:    normalizeDay(raw.Sunday),
	}, nil
}

// normalizeDay приводит день к форме с массивом ranges.
// Явный массив ranges имеет приоритет над устаревшей парой start/end.
func normalizeDay(raw rawDaySchedule) domain.DaySchedule {
	day := domain.DaySchedule{
		Enabled: raw.Enabled,
		Ranges:  raw.Ranges,
	}

	if len(day.Ranges) == 0 && raw.Start != nil && raw.End != nil {
		day.Ranges = []domain.TimeRange{{Start: *raw.Start, End: *raw.End}}
	}
	if day.Ranges == nil {
		day.Ranges = []domain.TimeRange{}
	}

	return day
}

// encodeWeekConfig сериализует расписание всегда в текущей форме
func encodeWeekConfig(week domain.WeekSchedule) ([]byte, error) {
	data, err := json.Marshal(week)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeWeekConfig, err)
	}
	return data, nil
}
