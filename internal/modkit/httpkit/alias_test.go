package httpkit

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// run executes a Handler and returns status code and body
func run(t *testing.T, h Handler, method, body string) (int, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://x.test/files", rd)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec.Code, rec.Body.String()
}

func TestResponseConstructors(t *testing.T) {
	cases := []struct {
		name string
		resp Response
		want int
	}{
		{"ok", OK("x"), http.StatusOK},
		{"created", Created(123), http.StatusCreated},
		{"no content", NoContent(), http.StatusNoContent},
		{"data", Data("alias"), http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := Handle(func(*http.Request) Response { return c.resp })
			code, _ := run(t, h, http.MethodGet, "")
			if code != c.want {
				t.Fatalf("status = %d, want %d", code, c.want)
			}
		})
	}
}

func TestErrorAndListConstructors(t *testing.T) {
	h := Handle(func(*http.Request) Response { return Error(errors.New("boom")) })
	code, body := run(t, h, http.MethodGet, "")
	if code != http.StatusInternalServerError || body == "" {
		t.Fatalf("status = %d, body = %q", code, body)
	}

	h = Handle(func(*http.Request) Response {
		return List([]string{"orre.csv", "srr.xlsx"}, 2, 1, 50, "")
	})
	code, body = run(t, h, http.MethodGet, "")
	if code != http.StatusOK || !strings.Contains(body, "srr.xlsx") {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}

func TestCall_WrapsPlainValue(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return map[string]string{"file_id": "f1"}, nil
	})
	code, body := run(t, h, http.MethodGet, "")
	if code != http.StatusOK || !strings.Contains(body, `"file_id":"f1"`) {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}

func TestCall_ErrorPath(t *testing.T) {
	h := Call(func(*http.Request) (any, error) {
		return nil, errors.New("nah")
	})
	code, body := run(t, h, http.MethodGet, "")
	if code != http.StatusInternalServerError || body == "" {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}

type deleteFileReq struct {
	FileID string `json:"file_id" validate:"required"`
}

func TestJSON_DecodesAndCallsHandler(t *testing.T) {
	h := JSON[deleteFileReq](func(r *http.Request, in deleteFileReq) (any, error) {
		return map[string]string{"deleted": in.FileID}, nil
	})
	code, body := run(t, h, http.MethodPost, `{"file_id":"f9"}`)
	if code != http.StatusOK || !strings.Contains(body, `"deleted":"f9"`) {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}

func TestJSON_RunsValidation(t *testing.T) {
	h := JSON[deleteFileReq](func(*http.Request, deleteFileReq) (any, error) {
		t.Fatal("handler must not run on validation failure")
		return nil, nil
	})
	// file_id is required; an empty object must be rejected
	code, body := run(t, h, http.MethodPost, `{}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}

func TestJSON_RejectsMalformedAndUnknown(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{`},
		{"unknown field", `{"file_id":"f1","oops":2}`},
		{"empty body", ``},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := JSON[deleteFileReq](func(*http.Request, deleteFileReq) (any, error) {
				t.Fatal("handler must not run on decode failure")
				return nil, nil
			})
			code, _ := run(t, h, http.MethodPost, c.body)
			if code != http.StatusBadRequest {
				t.Fatalf("status = %d", code)
			}
		})
	}
}

func TestJSON_HandlerError(t *testing.T) {
	h := JSON[deleteFileReq](func(*http.Request, deleteFileReq) (any, error) {
		return nil, errors.New("nope")
	})
	code, body := run(t, h, http.MethodPost, `{"file_id":"f1"}`)
	if code != http.StatusInternalServerError || body == "" {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}
