package panel

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/feliperocha/barberbot/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "clients.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(w, req)
	return w
}

func post(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	h.ServeHTTP(w, req)
	return w
}

func TestIndex_ListsEveryClientWithOwnToggleForm(t *testing.T) {
	st := openStore(t)
	if err := st.Upsert("5511999990000", "Maria"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := st.Upsert("5511888880000", "João"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	w := get(t, New(st, zerolog.Nop()).Handler(), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, phone := range []string{"5511999990000", "5511888880000"} {
		if !strings.Contains(body, "<td>"+phone+"</td>") {
			t.Fatalf("missing row for %s:\n%s", phone, body)
		}
		if !strings.Contains(body, `action="/toggle/`+phone+`"`) {
			t.Fatalf("missing toggle form for %s:\n%s", phone, body)
		}
	}
	if !strings.Contains(body, "Bloquear") {
		t.Fatalf("allowed client should offer Bloquear:\n%s", body)
	}
}

func TestIndex_BlockedClientOffersPermitir(t *testing.T) {
	st := openStore(t)
	if err := st.Upsert("5511999990000", "Maria"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := st.ToggleAuthorization("5511999990000"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	body := get(t, New(st, zerolog.Nop()).Handler(), "/").Body.String()
	if !strings.Contains(body, "<td>Não</td>") || !strings.Contains(body, "Permitir") {
		t.Fatalf("blocked row not rendered:\n%s", body)
	}
}

func TestToggle_RedirectsAndFlips(t *testing.T) {
	st := openStore(t)
	if err := st.Upsert("5511999990000", "Maria"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	h := New(st, zerolog.Nop()).Handler()
	w := post(t, h, "/toggle/5511999990000")
	if w.Code != http.StatusFound {
		t.Fatalf("status=%d, want redirect", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Fatalf("location=%q", got)
	}
	if st.IsAuthorized("5511999990000") {
		t.Fatal("expected client blocked after toggle")
	}
}

func TestToggle_UnknownPhoneFailsWithoutCreatingRecord(t *testing.T) {
	st := openStore(t)
	h := New(st, zerolog.Nop()).Handler()

	w := post(t, h, "/toggle/0000000000")
	if !strings.Contains(w.Body.String(), toggleErrorText) {
		t.Fatalf("body=%q, want toggle error text", w.Body.String())
	}

	body := get(t, h, "/").Body.String()
	if strings.Contains(body, "0000000000") {
		t.Fatalf("failed toggle must not create a record:\n%s", body)
	}
}

type failingDirectory struct{}

func (failingDirectory) List() (map[string]store.Client, error) {
	return nil, errors.New("disk unreadable")
}

func (failingDirectory) ToggleAuthorization(string) error {
	return errors.New("disk unreadable")
}

func TestIndex_ListFailureRendersErrorText(t *testing.T) {
	w := get(t, New(failingDirectory{}, zerolog.Nop()).Handler(), "/")
	if !strings.Contains(w.Body.String(), listErrorText) {
		t.Fatalf("body=%q, want list error text", w.Body.String())
	}
}
