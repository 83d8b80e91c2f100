package birds

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(newTestRepo()).WithClock(func() time.Time { return fixedNow })
	if _, err := svc.Seed(context.Background(), DefaultSeed()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func serve(t *testing.T, svc *Service, opts HandlerOptions) (*http.Response, []byte) {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, svc, opts)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/birds", nil))
	res := rec.Result()
	body, _ := io.ReadAll(res.Body)
	return res, body
}

func TestListBirds_FlatArray(t *testing.T) {
	res, body := serve(t, seededService(t), HandlerOptions{})

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	want := `{"id":1,"name":"Black-Capped Chickadee","species":"Poecile Atricapillus",` +
		`"created_at":"2019-05-09T11:07:58.188Z","updated_at":"2019-05-09T11:07:58.188Z"}`
	if !bytes.HasPrefix(body, []byte("["+want)) {
		t.Fatalf("unexpected body: %s", body)
	}

	items, msgs, err := DecodeBirds(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msgs != nil || len(items) != 4 {
		t.Fatalf("expected 4 birds and no messages, got %d / %v", len(items), msgs)
	}
	seen := map[int64]bool{}
	for i, b := range items {
		if seen[b.ID] {
			t.Fatalf("duplicate id %d", b.ID)
		}
		seen[b.ID] = true
		if i > 0 && items[i-1].ID >= b.ID {
			t.Fatalf("not in id order: %v", items)
		}
	}
}

func TestListBirds_Envelope(t *testing.T) {
	res, body := serve(t, seededService(t), HandlerOptions{Envelope: true})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	items, msgs, err := DecodeBirds(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 4 || items[3].Name != "Mourning Dove" {
		t.Fatalf("unexpected birds: %#v", items)
	}
	if len(msgs) != 2 || msgs[0] != "Hello birds" || msgs[1] != "Goodbye birds" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestListBirds_EmptyStore(t *testing.T) {
	svc := NewService(newTestRepo())

	_, body := serve(t, svc, HandlerOptions{})
	if got := strings.TrimSpace(string(body)); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}

	_, body = serve(t, svc, HandlerOptions{Envelope: true})
	if got := strings.TrimSpace(string(body)); got != `{"birds":[],"messages":["Hello birds","Goodbye birds"]}` {
		t.Fatalf("unexpected envelope: %s", got)
	}
}

func TestListBirds_Plain(t *testing.T) {
	res, body := serve(t, seededService(t), HandlerOptions{Serializer: PlainSerializer{}, Envelope: true})

	if ct := res.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %q", lines)
	}
	if lines[1] != "2 Grackle (Quiscalus Quiscula)" || lines[5] != "Goodbye birds" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestListBirds_StoreErrorIs500(t *testing.T) {
	repo := newTestRepo()
	repo.listErr = errors.New("db down")

	var observed []int
	res, _ := serve(t, NewService(repo), HandlerOptions{Observe: func(n int) { observed = append(observed, n) }})
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	if len(observed) != 0 {
		t.Fatalf("observer should not fire on error")
	}
}

func TestListBirds_ObserveCount(t *testing.T) {
	var observed []int
	serve(t, seededService(t), HandlerOptions{Observe: func(n int) { observed = append(observed, n) }})
	if len(observed) != 1 || observed[0] != 4 {
		t.Fatalf("unexpected observed counts: %v", observed)
	}
}

func TestBirdJSONRoundTrip(t *testing.T) {
	src := Bird{
		ID:        7,
		Name:      "Grackle",
		Species:   "Quiscalus Quiscula",
		CreatedAt: time.Date(2019, 5, 9, 13, 7, 58, 188_000_000, time.FixedZone("CEST", 2*3600)),
		UpdatedAt: fixedNow,
	}

	var buf bytes.Buffer
	if err := (JSONSerializer{}).Write(&buf, []Bird{src}, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"created_at":"2019-05-09T11:07:58.188Z"`) {
		t.Fatalf("timestamp not rendered in UTC millis: %s", buf.String())
	}

	got, _, err := DecodeBirds(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := got[0]
	if b.ID != src.ID || b.Name != src.Name || b.Species != src.Species {
		t.Fatalf("fields changed: %#v", b)
	}
	if !b.CreatedAt.Equal(src.CreatedAt) || !b.UpdatedAt.Equal(src.UpdatedAt) {
		t.Fatalf("timestamps changed: %v %v", b.CreatedAt, b.UpdatedAt)
	}
}

func TestListBirds_ServesBlankName(t *testing.T) {
	svc := NewService(newTestRepo()).WithClock(func() time.Time { return fixedNow })
	if _, err := svc.Seed(context.Background(), []SeedBird{{Name: "", Species: "Quiscalus Quiscula"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, body := serve(t, svc, HandlerOptions{})
	if !strings.Contains(string(body), `"id":1,"name":"","species":"Quiscalus Quiscula"`) {
		t.Fatalf("blank name not served verbatim: %s", body)
	}
}

func TestTimestamp_UnmarshalNullIsZero(t *testing.T) {
	items, _, err := DecodeBirds([]byte(`[{"id":1,"name":"Grackle","species":"","created_at":null,"updated_at":"2019-05-09T11:07:58.188Z"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !items[0].CreatedAt.IsZero() || !items[0].UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected timestamps: %v / %v", items[0].CreatedAt, items[0].UpdatedAt)
	}
}
