package grid

import (
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func tags(ts ...domain.WorkType) []domain.WorkType { return ts }

func TestClassify_Precedence(t *testing.T) {
	cases := []struct {
		name       string
		hours      float64
		tags       []domain.WorkType
		category   Category
		hoursLabel string
		annotation string
		tagLabel   string
	}{
		{"nothing logged", 0, nil, CategoryEmpty, "0h", "", ""},
		{"holiday with work", 5, tags(domain.WorkHoliday, domain.WorkAssigned), CategoryHolidayWork, "5h", "+8h Holiday", "Holiday"},
		{"holiday with wfh", 3, tags(domain.WorkFromHome, domain.WorkHoliday), CategoryHolidayWork, "3h", "+8h Holiday", "WFH +1"},
		{"absent", 0, tags(domain.WorkAbsent), CategoryAbsent, "---", "", "Absent"},
		{"absent beats leave", 0, tags(domain.WorkLeave, domain.WorkAbsent), CategoryAbsent, "---", "", "Leave +1"},
		{"leave forces 8h", 2, tags(domain.WorkLeave), CategoryLeave, "8h", "", "Leave"},
		{"sick leave", 8, tags(domain.WorkSickLeave), CategoryLeave, "8h", "", "Sick"},
		{"leave on holiday is holiday", 8, tags(domain.WorkLeave, domain.WorkHoliday), CategoryHoliday, "8h", "", "Holiday"},
		{"holiday only", 8, tags(domain.WorkHoliday), CategoryHoliday, "8h", "", "Holiday"},
		{"overtime", 10.5, tags(domain.WorkRegular), CategoryOvertime, "10.5h", "+2.5h OT", ""},
		{"standard day", 8, tags(domain.WorkAssigned), CategoryWorkDay, "8h", "", ""},
		{"partial day", 7.5, tags(domain.WorkRegular), CategoryWorkDay, "7.5h", "", ""},
		{"training with no hours", 0, tags(domain.WorkTraining), CategoryEmpty, "0h", "", "Training"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(tc.hours, tc.tags)
			assert.Equal(t, tc.category, c.Category)
			assert.Equal(t, tc.hoursLabel, c.HoursLabel)
			assert.Equal(t, tc.annotation, c.Annotation)
			assert.Equal(t, tc.tagLabel, c.TagLabel)
		})
	}
}

func TestClassify_HolidayWorkShowsLoggedHours(t *testing.T) {
	for _, h := range []float64{0.5, 4, 8, 12} {
		c := Classify(h, tags(domain.WorkHoliday, domain.WorkAssigned))
		assert.Equal(t, CategoryHolidayWork, c.Category)
		assert.Equal(t, h, c.Hours)
		assert.Equal(t, FormatHours(h), c.HoursLabel)
	}
}

func TestClassify_EmptyCell(t *testing.T) {
	c := Classify(0, []domain.WorkType{})
	assert.Equal(t, CategoryEmpty, c.Category)
	assert.Equal(t, "0h", c.HoursLabel)
}

func TestClassify_OvertimeAnnotation(t *testing.T) {
	for _, h := range []float64{8.25, 9, 12, 16} {
		c := Classify(h, tags(domain.WorkRegular))
		assert.Equal(t, CategoryOvertime, c.Category)
		assert.Equal(t, h-8, Overtime(h))
		assert.Equal(t, "+"+FormatHours(h-8)+" OT", c.Annotation)
	}
}

func TestClassify_PartialFlag(t *testing.T) {
	assert.True(t, Classify(3, tags(domain.WorkRegular)).Partial)
	assert.False(t, Classify(8, tags(domain.WorkRegular)).Partial)
}

func TestClassifyDay(t *testing.T) {
	c := ClassifyDay(domain.DayCell{Hours: 9, Tags: tags(domain.WorkAssigned)})
	assert.Equal(t, CategoryOvertime, c.Category)
}

func TestTagLabel(t *testing.T) {
	assert.Equal(t, "", TagLabel(nil))
	assert.Equal(t, "", TagLabel(tags(domain.WorkAssigned)))
	assert.Equal(t, "Other", TagLabel(tags(domain.WorkAssigned, domain.WorkOther)))
	assert.Equal(t, "Sick +2", TagLabel(tags(domain.WorkSickLeave, domain.WorkHoliday, domain.WorkOther)))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8h", FormatHours(8))
	assert.Equal(t, "7.5h", FormatHours(7.5))
	assert.Equal(t, "0h", FormatHours(0))
}
