package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Egor213/LogParser/internal/controller/console"
	"github.com/Egor213/LogParser/internal/domain"
	service_mock "github.com/Egor213/LogParser/internal/mocks/service"
	"github.com/Egor213/LogParser/internal/repo/repotypes"
	"github.com/Egor213/LogParser/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func TestConsole_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := service_mock.NewMockQuerier(ctrl)
	gomock.InOrder(
		mockQuerier.EXPECT().
			Query(gomock.Any(), service.QueryRequest{Fields: "host,bytes"}).
			Return(domain.QueryResult{
				Fields: []domain.Field{domain.FieldHost, domain.FieldBytes},
				Rows:   []domain.Row{{"host": strPtr("127.0.0.1"), "bytes": nil}},
			}, nil),
		mockQuerier.EXPECT().
			Query(gomock.Any(), service.QueryRequest{
				Fields: "*",
				Range: &repotypes.TimeRange{
					Start: "10/Oct/2023:13:55:00",
					End:   "10/Oct/2023:13:56:00",
				},
			}).
			Return(domain.QueryResult{}, &service.InvalidFieldError{Field: "x"}),
	)

	input := strings.Join([]string{
		"host,bytes", "no",
		"*", "да", "10/Oct/2023", "10/Oct/2023", "13:55:00", "13:56:00",
		"status", "yes", "10/Oct/2023", "", "13:55:00", "13:56:00",
		"exit",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := console.New(mockQuerier, strings.NewReader(input), &out).Run(context.Background())
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Available fields:")
	assert.Contains(t, got, "HOST")
	assert.Contains(t, got, "127.0.0.1")
	assert.Contains(t, got, "(1 rows)")
	assert.Contains(t, got, `Query failed: invalid field "x"`)
	assert.Contains(t, got, "Error: query error:")
}

func TestConsole_RunStopsAtEOF(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := service_mock.NewMockQuerier(ctrl)
	mockQuerier.EXPECT().
		Query(gomock.Any(), service.QueryRequest{Fields: "*"}).
		Return(domain.QueryResult{Fields: domain.Fields()}, nil)

	var out bytes.Buffer
	err := console.New(mockQuerier, strings.NewReader("*\nno"), &out).Run(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "(0 rows)")
}
