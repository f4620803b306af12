package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

func TestIntegrationLogsXLSX(t *testing.T) {
	created := time.Date(2030, 5, 10, 12, 30, 15, 0, time.UTC)
	logs := []domain.IntegrationLog{
		{
			ContactID: "5511999990000", Origin: "whatsapp",
			To:         "https://pms.example.com/app/reservations/checkAvailability",
			Content:    datatypes.JSON(`{"token":"*****"}`),
			Response:   datatypes.JSON(`{"detail":"timeout"}`),
			StatusHTTP: 504, ResponseTime: 30.001, CreatedAt: created,
		},
		{ContactID: "unknown", StatusHTTP: 200, ResponseTime: 0.25, CreatedAt: created.Add(time.Minute)},
	}

	raw, err := IntegrationLogsXLSX(logs, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, IntegrationLogHeader, rows[0])
	assert.Equal(t, "2030-05-10 12:30:15", rows[1][0])
	assert.Equal(t, "5511999990000", rows[1][1])
	assert.Equal(t, "504", rows[1][4])
	assert.Equal(t, "30.001", rows[1][5])
	assert.Equal(t, `{"detail":"timeout"}`, rows[1][7])
	assert.Equal(t, "unknown", rows[2][1])
}

func TestIntegrationLogsXLSX_EmptyHasHeaderOnly(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	raw, err := IntegrationLogsXLSX(nil, loc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
