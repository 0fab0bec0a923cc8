package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/core/ports"
)

type stubMessageService struct {
	createFn     func(ctx context.Context, in ports.CreateMessageInput) (*domain.Message, error)
	listFn       func(ctx context.Context, callerEmail string) ([]*domain.Message, error)
	updateFn     func(ctx context.Context, in ports.UpdateMessageInput) (*domain.Message, error)
	listByUserFn func(ctx context.Context, userEmail string) ([]*domain.Message, error)
}

func (s *stubMessageService) Create(ctx context.Context, in ports.CreateMessageInput) (*domain.Message, error) {
	return s.createFn(ctx, in)
}

func (s *stubMessageService) List(ctx context.Context, callerEmail string) ([]*domain.Message, error) {
	return s.listFn(ctx, callerEmail)
}

func (s *stubMessageService) Update(ctx context.Context, in ports.UpdateMessageInput) (*domain.Message, error) {
	return s.updateFn(ctx, in)
}

func (s *stubMessageService) ListByUser(ctx context.Context, userEmail string) ([]*domain.Message, error) {
	return s.listByUserFn(ctx, userEmail)
}

func TestMessageHandler_Create_Success(t *testing.T) {
	stub := &stubMessageService{
		createFn: func(ctx context.Context, in ports.CreateMessageInput) (*domain.Message, error) {
			return &domain.Message{ID: "m1", Name: in.Name, Email: in.Email, Message: in.Message, UserEmail: in.Email, Status: domain.MessageNew}, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/users-message", `{"name":"Ana","email":"ana@example.com","message":"hello"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Data["_id"] != "m1" || resp.Data["status"] != "new" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestMessageHandler_Create_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"email":"ana@example.com","message":"hi"}`, "name is required"},
		{"missing message", `{"name":"Ana","email":"ana@example.com"}`, "message is required"},
		{"bad email", `{"name":"Ana","email":"not-an-email","message":"hi"}`, "invalid email format"},
		{"email without tld", `{"name":"Ana","email":"ana@example","message":"hi"}`, "invalid email format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubMessageService{
				createFn: func(ctx context.Context, in ports.CreateMessageInput) (*domain.Message, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			h := NewMessageHandler(stub)

			c, _ := newJSONContext(http.MethodPost, "/users-message", tc.body)
			err := h.Create(c)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if err.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestMessageHandler_List_IncludesCount(t *testing.T) {
	stub := &stubMessageService{
		listFn: func(ctx context.Context, callerEmail string) ([]*domain.Message, error) {
			if callerEmail != "root@example.com" {
				t.Fatalf("unexpected caller %q", callerEmail)
			}
			return []*domain.Message{{ID: "m2"}, {ID: "m1"}}, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/all-users-messages?email=root@example.com", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestMessageHandler_List_EmptyCountIsPresent(t *testing.T) {
	stub := &stubMessageService{
		listByUserFn: func(ctx context.Context, userEmail string) ([]*domain.Message, error) {
			return []*domain.Message{}, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/users-messages/ana@example.com", "")
	c.SetParamNames("userEmail")
	c.SetParamValues("ana@example.com")

	if err := h.ListByUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(0) {
		t.Fatalf("expected count 0, got %v", resp["count"])
	}
}

func TestMessageHandler_ListByUser_RejectsMalformedEmail(t *testing.T) {
	stub := &stubMessageService{
		listByUserFn: func(ctx context.Context, userEmail string) ([]*domain.Message, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewMessageHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/users-messages/nope", "")
	c.SetParamNames("userEmail")
	c.SetParamValues("nope")

	if err := h.ListByUser(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMessageHandler_Update_MapsBody(t *testing.T) {
	stub := &stubMessageService{
		updateFn: func(ctx context.Context, in ports.UpdateMessageInput) (*domain.Message, error) {
			if in.ID != "m1" || in.CallerEmail != "root@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Status == nil || *in.Status != "resolved" || in.IsRead != nil {
				t.Fatalf("unexpected fields: %+v", in)
			}
			return &domain.Message{ID: "m1", Status: domain.MessageResolved}, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newJSONContext(http.MethodPatch, "/users-messages/m1", `{"email":"root@example.com","status":"resolved"}`)
	c.SetParamNames("id")
	c.SetParamValues("m1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
