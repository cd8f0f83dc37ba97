package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosip/countryrules/export"
	"github.com/heliosip/countryrules/rulestore"
	"github.com/heliosip/countryrules/shared/core"
)

func Test_WriteCSV(t *testing.T) {
	// arrange
	var buf bytes.Buffer

	// act
	err := export.WriteCSV(&buf, []core.ReportRow{givenRow()})

	// assert
	require.NoError(t, err)
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, export.ReportColumns, records[0])
	assert.Equal(t, "Output Type", records[0][9])
	assert.Equal(t, []string{
		"RF-00001", "101", "100 -> 101", "Task", "Request examination", "Patent", "Austria, Germany",
		"[100] File application", "Filed", "Task", "Examination Requested", "add 2 weeks", "add 6 months",
	}, records[1])
}

func Test_WriteCSV_HeaderOnlyForNoRows(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteCSV(&buf, nil))

	assert.Equal(t, "FamilyReference,RuleID,ChainPath,RuleType,RuleName,MatterType,Jurisdictions,"+
		"TriggeredBy,TriggerCondition,Output Type,Outcome,DueDate,FinalDueDate\n", buf.String())
}

func Test_WriteCalculatedCSV_NilDatesAreEmpty(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	due := time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC)
	row := core.CalculatedRow{
		ReportRow:         givenRow(),
		BaseDate:          time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		CalculatedDueDate: &due,
	}

	// act
	err := export.WriteCalculatedCSV(&buf, []core.CalculatedRow{row})

	// assert
	require.NoError(t, err)
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"BaseDate", "CalculatedDueDate", "CalculatedFinalDueDate"}, records[0][13:])
	assert.Equal(t, []string{"2024-01-31", "2024-02-14", ""}, records[1][13:])
}

func Test_WriteJSON(t *testing.T) {
	// arrange
	var buf bytes.Buffer

	// act
	err := export.WriteJSON(&buf, []core.ReportRow{givenRow()})

	// assert
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Task", decoded[0]["Output Type"])
	assert.Equal(t, float64(101), decoded[0]["RuleID"])
	assert.Len(t, decoded[0], len(export.ReportColumns))
}

func Test_WriteJSON_EmptyArray(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteJSON(&buf, nil))

	assert.JSONEq(t, "[]", buf.String())
}

func Test_WriteCalculatedJSON_NilDatesAreNull(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	row := core.CalculatedRow{
		ReportRow: givenRow(),
		BaseDate:  time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	// act
	err := export.WriteCalculatedJSON(&buf, []core.CalculatedRow{row})

	// assert
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "2024-01-31", decoded[0]["BaseDate"])
	assert.Nil(t, decoded[0]["CalculatedDueDate"])
	assert.Contains(t, decoded[0], "CalculatedFinalDueDate")
	assert.Equal(t, "RF-00001", decoded[0]["FamilyReference"])
}

func givenRow() core.ReportRow {
	return core.ReportRow{
		FamilyReference:  "RF-00001",
		RuleID:           101,
		ChainPath:        "100 -> 101",
		Level:            2,
		RuleType:         rulestore.RuleTypeTask,
		RuleName:         "Request examination",
		MatterType:       "Patent",
		Jurisdictions:    "Austria, Germany",
		TriggeredBy:      "[100] File application",
		TriggerCondition: "Filed",
		OutputType:       "Task",
		Outcome:          "Examination Requested",
		DueDate:          "add 2 weeks",
		FinalDueDate:     "add 6 months",
	}
}
