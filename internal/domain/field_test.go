package domain_test

import (
	"testing"

	"github.com/Egor213/LogParser/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseField(t *testing.T) {
	for i, f := range domain.Fields() {
		got, ok := domain.ParseField(f.String())
		assert.True(t, ok)
		assert.Equal(t, f, got)
		assert.Equal(t, i, f.Index())
		assert.NotEmpty(t, f.Describe())
	}

	for _, name := range []string{"", "*", "Host", "h", "host;DROP TABLE logs", "id"} {
		_, ok := domain.ParseField(name)
		assert.False(t, ok, name)
	}
}

func TestRow_Project(t *testing.T) {
	host, status := "10.0.0.1", "200"
	row := domain.Row{"host": &host, "status": &status, "bytes": nil}

	got := row.Project([]domain.Field{domain.FieldStatus, domain.FieldBytes})

	assert.Equal(t, domain.Row{"status": &status, "bytes": nil}, got)
}
