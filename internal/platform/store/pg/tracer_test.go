package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"select 1", "select 1"},
		{"  select   1  ", " select 1 "},
		{"INSERT INTO files_log\n\t(file_id, filename)\n\tVALUES ($1,$2)", "INSERT INTO files_log (file_id, filename) VALUES ($1,$2)"},
		{"\n\nSELECT\n\tfile_id  FROM\r\nfiles_log", " SELECT file_id FROM files_log"},
		{"", ""},
	}
	for i, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Fatalf("case %d: compact(%q) = %q, want %q", i, c.in, got, c.want)
		}
	}
}

type traceLine struct {
	Level     string  `json:"level"`
	ElapsedMS float64 `json:"elapsed_ms"`
	Slow      bool    `json:"slow"`
	SQL       string  `json:"sql"`
	Args      any     `json:"args"`
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	Component string  `json:"component,omitempty"`
}

func decodeTrace(t *testing.T, buf *bytes.Buffer) traceLine {
	t.Helper()
	var line traceLine
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("unmarshal trace line: %v\nraw=%s", err, buf.String())
	}
	return line
}

func TestTracer_InfoLineCarriesAllFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	ev := QueryEvent{
		SQL:       "SELECT  filename \n FROM  files_log\tWHERE dossier_id = $1",
		Args:      []any{"D-100"},
		ElapsedUS: 12345,
		Err:       errors.New("boom"),
	}
	tr.OnQuery(context.Background(), ev)

	line := decodeTrace(t, &buf)
	if line.Level != "info" {
		t.Fatalf("level = %q, want info", line.Level)
	}
	wantMs := float64(ev.ElapsedUS) / 1000.0
	if math.Abs(line.ElapsedMS-wantMs) > 0.0005 {
		t.Fatalf("elapsed_ms = %v, want %v", line.ElapsedMS, wantMs)
	}
	if line.Slow {
		t.Fatal("slow should be false")
	}
	if line.SQL != "SELECT filename FROM files_log WHERE dossier_id = $1" {
		t.Fatalf("sql not compacted: %q", line.SQL)
	}
	arr, ok := line.Args.([]any)
	if !ok || len(arr) != 1 || arr[0].(string) != "D-100" {
		t.Fatalf("args = %#v", line.Args)
	}
	if line.Error != "boom" {
		t.Fatalf("error = %q", line.Error)
	}
	if line.Message != "pg query" {
		t.Fatalf("message = %q", line.Message)
	}
	if line.Component != "pg" {
		t.Fatalf("component = %q", line.Component)
	}
}

func TestTracer_SlowQueriesWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	tr.OnQuery(context.Background(), QueryEvent{
		SQL:       "SELECT count(*) FROM files_log",
		ElapsedUS: 2_500_000,
		Slow:      true,
	})

	line := decodeTrace(t, &buf)
	if line.Level != "warn" {
		t.Fatalf("level = %q, want warn", line.Level)
	}
	if !line.Slow {
		t.Fatal("slow should be true")
	}
	if math.Abs(line.ElapsedMS-2500.0) > 0.0005 {
		t.Fatalf("elapsed_ms = %v, want 2500", line.ElapsedMS)
	}
}
