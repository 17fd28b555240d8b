package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go-booking-api/core/config"
	"go-booking-api/core/ics"
	"go-booking-api/core/mailer"
	"go-booking-api/modules/notification/dto"

	"github.com/google/uuid"
)

type sentEmail struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTML        string   `json:"html"`
	Attachments []struct {
		Filename string          `json:"filename"`
		Content  json.RawMessage `json:"content"`
	} `json:"attachments"`
}

// attachmentBytes accepts either a base64 string or a byte array.
func attachmentBytes(raw json.RawMessage) ([]byte, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return base64.StdEncoding.DecodeString(s)
	}
	var ints []int
	if err := json.Unmarshal(raw, &ints); err != nil {
		return nil, err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		out[i] = byte(v)
	}
	return out, nil
}

type mailServer struct {
	*httptest.Server
	mu       sync.Mutex
	messages []sentEmail
	status   int
}

func newMailServer(t *testing.T, status int) *mailServer {
	t.Helper()
	ms := &mailServer{status: status}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg sentEmail
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode email: %v", err)
		}
		ms.mu.Lock()
		ms.messages = append(ms.messages, msg)
		ms.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ms.status)
		_, _ = w.Write([]byte(`{"id":"x"}`))
	}))
	t.Cleanup(ms.Close)
	return ms
}

func (ms *mailServer) sent() []sentEmail {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]sentEmail(nil), ms.messages...)
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (s *memoryStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
		s.types = map[string]string{}
	}
	s.objects[key] = body
	s.types[key] = contentType
	return nil
}

func sampleNotification() *dto.BookingNotification {
	start := time.Date(2030, 6, 3, 9, 0, 0, 0, time.UTC)
	return &dto.BookingNotification{
		BookingID:  uuid.MustParse("7f1d2a4e-3a1c-4c39-8a55-7b8d7a9f0c11"),
		EventID:    uuid.MustParse("0b7e0a6a-b57c-4b8e-9d1e-6f0f4fd3a2b1"),
		EventTitle: "Intro call",
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		GuestEmail: "guest@example.com",
		GuestName:  "Grace",
		Notes:      "Agenda attached",
		HostEmail:  "host@example.com",
		HostName:   "Ada Lovelace",
	}
}

func fixedBuilder() *ics.Builder {
	b := ics.NewBuilder()
	b.Now = func() time.Time { return time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC) }
	b.NewUID = func() string { return "fixed-uid" }
	return b
}

func newService(t *testing.T, ms *mailServer, key string, store *memoryStore) *NotificationService {
	t.Helper()
	client := mailer.NewResendClient(config.EmailConfig{ResendAPIKey: key, BaseURL: ms.URL})
	var s *NotificationService
	if store != nil {
		s = NewNotificationService(client, store, "https://book.example.com")
	} else {
		s = NewNotificationService(client, nil, "https://book.example.com")
	}
	return s.WithInviteBuilder(fixedBuilder())
}

func TestSendConfirmationUnconfigured(t *testing.T) {
	ms := newMailServer(t, http.StatusOK)
	store := &memoryStore{}
	s := newService(t, ms, "", store)

	if err := s.SendConfirmation(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}
	if n := len(ms.sent()); n != 0 {
		t.Fatalf("outbound calls = %d, want 0", n)
	}
	if len(store.objects) != 0 {
		t.Fatalf("archived %d invites while mail is disabled", len(store.objects))
	}
}

func TestSendConfirmation(t *testing.T) {
	ms := newMailServer(t, http.StatusOK)
	store := &memoryStore{}
	s := newService(t, ms, "re_test", store)
	n := sampleNotification()

	if err := s.SendConfirmation(context.Background(), n); err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}

	sent := ms.sent()
	if len(sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sent))
	}

	bySubject := map[string]sentEmail{}
	for _, m := range sent {
		bySubject[m.Subject] = m
	}
	guest, ok := bySubject["Meeting Confirmed: Intro call"]
	if !ok || guest.To[0] != "guest@example.com" {
		t.Fatalf("guest email missing: %+v", sent)
	}
	host, ok := bySubject["New Booking: guest@example.com - Intro call"]
	if !ok || host.To[0] != "host@example.com" {
		t.Fatalf("host email missing: %+v", sent)
	}

	for _, m := range []sentEmail{guest, host} {
		if len(m.Attachments) != 1 || m.Attachments[0].Filename != "meeting.ics" {
			t.Fatalf("attachments = %+v", m.Attachments)
		}
		body, err := attachmentBytes(m.Attachments[0].Content)
		if err != nil {
			t.Fatalf("decode attachment: %v", err)
		}
		if !strings.Contains(string(body), "BEGIN:VCALENDAR") || !strings.Contains(string(body), "fixed-uid@go-booking-api") {
			t.Fatalf("attachment is not the invite:\n%s", body)
		}
	}
	if !strings.Contains(guest.HTML, "Grace") || !strings.Contains(guest.HTML, "Ada Lovelace") {
		t.Fatalf("guest html = %s", guest.HTML)
	}

	key := "invites/" + n.BookingID.String() + ".ics"
	if _, ok := store.objects[key]; !ok {
		t.Fatalf("invite not archived under %s: %v", key, store.objects)
	}
	if !strings.HasPrefix(store.types[key], "text/calendar") {
		t.Fatalf("content type = %q", store.types[key])
	}
}

func TestSendConfirmationProviderFailure(t *testing.T) {
	ms := newMailServer(t, http.StatusInternalServerError)
	s := newService(t, ms, "re_test", nil)

	err := s.SendConfirmation(context.Background(), sampleNotification())
	if err == nil {
		t.Fatal("expected an error from a failing provider")
	}
	if !strings.Contains(err.Error(), "guest email") || !strings.Contains(err.Error(), "host email") {
		t.Fatalf("err = %v, want both deliveries reported", err)
	}
	// one attempt per recipient
	if n := len(ms.sent()); n != 2 {
		t.Fatalf("attempts = %d, want 2", n)
	}
}

func TestSendConfirmationDefaultTitle(t *testing.T) {
	ms := newMailServer(t, http.StatusOK)
	s := newService(t, ms, "re_test", nil)
	n := sampleNotification()
	n.EventTitle = ""

	if err := s.SendConfirmation(context.Background(), n); err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}
	for _, m := range ms.sent() {
		if !strings.HasSuffix(m.Subject, "Meeting") {
			t.Fatalf("subject = %q", m.Subject)
		}
	}
}

func TestSendCancellation(t *testing.T) {
	ms := newMailServer(t, http.StatusOK)
	s := newService(t, ms, "re_test", nil)

	if err := s.SendCancellation(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("SendCancellation: %v", err)
	}
	sent := ms.sent()
	if len(sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sent))
	}
	if sent[0].Subject != "Meeting Cancelled: Intro call" || sent[0].To[0] != "guest@example.com" {
		t.Fatalf("message = %+v", sent[0])
	}
	if len(sent[0].Attachments) != 0 {
		t.Fatal("cancellation should not carry an invite")
	}
}
