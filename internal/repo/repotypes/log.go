package repotypes

import "github.com/Egor213/LogParser/internal/domain"

// TimeRange bounds are compared as plain strings, both inclusive.
type TimeRange struct {
	Start string
	End   string
}

// LogQuery is a validated read: Fields only ever holds known fields.
type LogQuery struct {
	Fields []domain.Field
	Range  *TimeRange
}
