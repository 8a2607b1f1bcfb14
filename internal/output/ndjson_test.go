package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/faultline/internal/domain"
)

func decodeAll(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	var out []map[string]any
	for {
		var m map[string]any
		err := dec.Decode(&m)
		if err == nil {
			out = append(out, m)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	return out
}

func sampleReport() *domain.Report {
	r := domain.NewReport(domain.ReportFaults)
	r.Query = "main_query"
	r.From = "-10m"
	r.Baseline = 53137
	r.Events = 58
	r.EventsPercent = 0.109
	r.Distinct = 2
	r.Rows = []domain.Row{
		{Rank: 1, Key: "call.refused", Count: 38, Percent: 0.072},
		{Rank: 2, Key: "call.timeout", Count: 20, Percent: 0.038},
	}
	return r
}

func TestNDJSONWriter_Report(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.Report(sampleReport()))

	var out domain.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "report", out.Type)
	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, domain.ReportFaults, out.Kind)
	assert.Equal(t, 53137, out.Baseline)
	assert.Equal(t, 0.109, out.EventsPercent)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "call.timeout", out.Rows[1].Key)
	assert.Equal(t, 0.038, out.Rows[1].Percent)
}

func TestNDJSONWriter_Notice(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.Notice(Notice{Query: `"a" "b&c"`, From: "-10m"}))

	var out InfoOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "info", out.Type)
	assert.Equal(t, "Gathering `\"a\" \"b&c\"` events from &from=-10m&until=...", out.Message)
	assert.Equal(t, "-10m", out.From)
	assert.NotContains(t, buf.String(), `\u0026`, "HTML escaping is off")
}

func TestNDJSONWriter_Error(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.Error("FETCH_FAILED", "gave up after 3 attempts", "check base_uri"))

	var out domain.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, SchemaVersion, out.SchemaVersion)
	assert.Equal(t, "FETCH_FAILED", out.Code)
	assert.Equal(t, "check base_uri", out.Hint)
}

func TestNDJSONWriterContract_AllTypesHaveSchemaVersion(t *testing.T) {
	start := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	require.NoError(t, w.Notice(Notice{Query: "q", From: "-10m"}))
	require.NoError(t, w.Report(sampleReport()))
	require.NoError(t, w.Ranking(&domain.Ranking{Type: "ranking", Kind: domain.ReportRollup, Entries: []domain.Entry{{Key: "u", Count: 1}}}))
	require.NoError(t, w.Hourly(&domain.HourlyReport{Type: "hourly", Buckets: []domain.HourBucket{{Start: start, End: start.Add(time.Hour), Total: 9}}, Total: 9}))
	require.NoError(t, w.FileCreated("oneoff_report.csv", 3))
	require.NoError(t, w.Warning("careful"))
	require.NoError(t, w.Metadata("1.0.0", "abc", ""))
	require.NoError(t, w.Error("INVALID_TIME", "x", ""))

	items := decodeAll(t, buf)
	require.Len(t, items, 8)

	want := []string{"info", "report", "ranking", "hourly", "file", "warning", "metadata", "error"}
	for i, m := range items {
		assert.Equal(t, want[i], m["type"])
		assert.Equal(t, float64(SchemaVersion), m["schemaVersion"], "type=%s", m["type"])
	}
}
