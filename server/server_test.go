package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/mathops"
	"github.com/poiesic/librarian/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	titles        []string
	RecommendFunc func(ctx context.Context, query string) (*recommend.Result, error)
	SummaryFunc   func(ctx context.Context, title string) string
	ComputeFunc   func(ctx context.Context, req mathops.Request) (*mathops.Outcome, error)
	HistoryFunc   func(ctx context.Context, limit int) ([]*core.RequestLogEntry, error)

	caches recommend.CacheReport

	lastCompute mathops.Request
	lastLimit   int
}

func (f *fakeService) Titles() []string { return f.titles }

func (f *fakeService) Recommend(ctx context.Context, query string) (*recommend.Result, error) {
	if f.RecommendFunc != nil {
		return f.RecommendFunc(ctx, query)
	}
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	return &recommend.Result{Query: query, State: recommend.StateMatched, Titles: []string{"1984"}}, nil
}

func (f *fakeService) Summary(ctx context.Context, title string) string {
	if f.SummaryFunc != nil {
		return f.SummaryFunc(ctx, title)
	}
	return "Expanded " + title
}

func (f *fakeService) Compute(ctx context.Context, req mathops.Request) (*mathops.Outcome, error) {
	f.lastCompute = req
	if f.ComputeFunc != nil {
		return f.ComputeFunc(ctx, req)
	}
	return &mathops.Outcome{Operation: req.Operation, Input: "2^3", Result: "8", Logged: req.Log}, nil
}

func (f *fakeService) History(ctx context.Context, limit int) ([]*core.RequestLogEntry, error) {
	f.lastLimit = limit
	if f.HistoryFunc != nil {
		return f.HistoryFunc(ctx, limit)
	}
	return nil, nil
}

func (f *fakeService) CacheStats() recommend.CacheReport { return f.caches }

func newTestServer(t *testing.T, svc *fakeService) *Server {
	t.Helper()
	srv, err := New(svc)
	require.NoError(t, err)
	return srv
}

func doRequest(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrServiceRequired)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeService{
		titles: []string{"The Hobbit", "1984"},
		caches: recommend.CacheReport{
			Summaries: recommend.CacheStats{Len: 2, Hits: 5, Misses: 2},
			Books:     recommend.CacheStats{Len: 1, Hits: 0, Misses: 1},
		},
	})
	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"status": "ok",
		"books": 2,
		"caches": {
			"summaries": {"len": 2, "hits": 5, "misses": 2},
			"books": {"len": 1, "hits": 0, "misses": 1}
		}
	}`, rec.Body.String())
}

func TestListBooks(t *testing.T) {
	srv := newTestServer(t, &fakeService{titles: []string{"The Hobbit", "1984"}})
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/books", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp booksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"The Hobbit", "1984"}, resp.Titles)
	assert.Equal(t, 2, resp.Count)
}

func TestRecommend(t *testing.T) {
	t.Run("matched", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", `{"query":"dystopia 1984"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var result recommend.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, recommend.StateMatched, result.State)
		assert.Equal(t, []string{"1984"}, result.Titles)
	})

	t.Run("synthesized", func(t *testing.T) {
		svc := &fakeService{
			RecommendFunc: func(ctx context.Context, query string) (*recommend.Result, error) {
				return &recommend.Result{
					Query: query,
					State: recommend.StateSynthesized,
					Synthesized: &recommend.Synthesized{
						Title:   "Dune",
						Summary: "A desert planet.",
						Status:  recommend.ParseComplete,
					},
				}, nil
			},
		}
		srv := newTestServer(t, svc)
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", `{"query":"sand worms"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"state":"synthesized"`)
		assert.Contains(t, rec.Body.String(), `"title":"Dune"`)
		assert.Contains(t, rec.Body.String(), `"status":"complete"`)
	})

	t.Run("empty query", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", `{"query":"   "}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, CodeEmptyQuery, apiErr.Code)
		assert.Equal(t, core.EmptyQueryPrompt, apiErr.Message)
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", `{"query":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeInvalidJSON, decodeError(t, rec).Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", `{"q":"hobbit"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeInvalidJSON, decodeError(t, rec).Code)
	})

	t.Run("query too long", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		body := fmt.Sprintf(`{"query":%q}`, strings.Repeat("a", 2001))
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, CodeValidation, apiErr.Code)
		assert.Contains(t, apiErr.Message, "query must be at most 2000")
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &fakeService{
			RecommendFunc: func(ctx context.Context, query string) (*recommend.Result, error) {
				return nil, errors.New("boom")
			},
		}
		srv := newTestServer(t, svc)
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/recommendations", `{"query":"hobbit"}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, CodeInternal, decodeError(t, rec).Code)
	})
}

func TestSummary(t *testing.T) {
	t.Run("expanded", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/books/summary?title=The+Hobbit", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp summaryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "The Hobbit", resp.Title)
		assert.Equal(t, "Expanded The Hobbit", resp.Summary)
	})

	t.Run("missing title", func(t *testing.T) {
		srv := newTestServer(t, &fakeService{})
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/books/summary", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, CodeValidation, apiErr.Code)
		assert.Equal(t, "title is required", apiErr.Message)
	})
}

func TestMath(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantCode   string
		wantReq    mathops.Request
	}{
		{
			name:       "power",
			target:     "/api/v1/math/power",
			body:       `{"base":2,"exponent":3}`,
			wantStatus: http.StatusOK,
			wantReq:    mathops.Request{Operation: mathops.OpPower, Base: 2, Exponent: 3, Log: true},
		},
		{
			name:       "fibonacci without logging",
			target:     "/api/v1/math/fibonacci",
			body:       `{"n":10,"log":false}`,
			wantStatus: http.StatusOK,
			wantReq:    mathops.Request{Operation: mathops.OpFibonacci, N: 10},
		},
		{
			name:       "operation name is case-insensitive",
			target:     "/api/v1/math/FACTORIAL",
			body:       `{"n":5}`,
			wantStatus: http.StatusOK,
			wantReq:    mathops.Request{Operation: mathops.OpFactorial, N: 5, Log: true},
		},
		{
			name:       "power missing exponent",
			target:     "/api/v1/math/power",
			body:       `{"base":2}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidation,
		},
		{
			name:       "factorial missing n",
			target:     "/api/v1/math/factorial",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidation,
		},
		{
			name:       "unknown operation",
			target:     "/api/v1/math/sqrt",
			body:       `{"n":4}`,
			wantStatus: http.StatusNotFound,
			wantCode:   CodeUnknownOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			srv := newTestServer(t, svc)
			rec := doRequest(t, srv, http.MethodPost, tt.target, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
				return
			}
			assert.Equal(t, tt.wantReq, svc.lastCompute)
		})
	}
}

func TestMath_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"negative", fmt.Errorf("%w: n must be >= 0", mathops.ErrNegativeInput), http.StatusUnprocessableEntity, CodeOutOfRange},
		{"too large", fmt.Errorf("%w: n must be <= 5000", mathops.ErrInputTooLarge), http.StatusUnprocessableEntity, CodeOutOfRange},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				ComputeFunc: func(ctx context.Context, req mathops.Request) (*mathops.Outcome, error) {
					return nil, tt.err
				},
			}
			srv := newTestServer(t, svc)
			rec := doRequest(t, srv, http.MethodPost, "/api/v1/math/factorial", `{"n":9999}`)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestHistory(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		svc := &fakeService{}
		srv := newTestServer(t, svc)
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/math/history", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, DefaultHistoryLimit, svc.lastLimit)
		assert.JSONEq(t, `{"entries":[]}`, rec.Body.String())
	})

	t.Run("entries", func(t *testing.T) {
		svc := &fakeService{
			HistoryFunc: func(ctx context.Context, limit int) ([]*core.RequestLogEntry, error) {
				return []*core.RequestLogEntry{
					{Id: 2, Operation: "factorial", Input: "5!", Result: "120"},
					{Id: 1, Operation: "power", Input: "2^3", Result: "8"},
				}, nil
			},
		}
		srv := newTestServer(t, svc)
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/math/history?limit=5", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, svc.lastLimit)
		var resp historyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, "5!", resp.Entries[0].Input)
	})

	t.Run("invalid limits", func(t *testing.T) {
		for _, limit := range []string{"abc", "0", "1001"} {
			srv := newTestServer(t, &fakeService{})
			rec := doRequest(t, srv, http.MethodGet, "/api/v1/math/history?limit="+limit, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
			assert.Equal(t, CodeValidation, decodeError(t, rec).Code, limit)
		}
	})
}

func TestRecoverer(t *testing.T) {
	svc := &fakeService{
		SummaryFunc: func(ctx context.Context, title string) string {
			panic("unexpected")
		},
	}
	srv := newTestServer(t, svc)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/books/summary?title=x", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
