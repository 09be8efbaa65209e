package store

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithLogger_SetsSubclientLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opt := WithLogger(zerolog.New(&buf))

	s := &Store{}
	if err := opt(s); err != nil {
		t.Fatalf("WithLogger: %v", err)
	}

	s.Log.Info().Str("component", "store").Msg("files log opened")
	if !bytes.Contains(buf.Bytes(), []byte("files log opened")) {
		t.Fatalf("log line did not reach the buffer: %q", buf.String())
	}

	// reapplying keeps the same sink
	if err := opt(s); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	before := buf.Len()
	s.Log.Info().Msg("warehouse opened")
	if buf.Len() == before {
		t.Fatal("expected more output after reapply")
	}
}
