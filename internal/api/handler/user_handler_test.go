package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/core/ports"
)

type stubUserService struct {
	listFn      func(ctx context.Context, callerEmail string) ([]domain.PublicUser, error)
	getFn       func(ctx context.Context, email string) (domain.PublicUser, error)
	createFn    func(ctx context.Context, in ports.CreateUserInput) (domain.PublicUser, error)
	updateFn    func(ctx context.Context, email string, patch domain.UserPatch) (domain.PublicUser, error)
	setAdminFn  func(ctx context.Context, in ports.SetAdminInput) (domain.PublicUser, error)
	roleCheckFn func(ctx context.Context, email string) (domain.RoleSummary, error)
}

func (s *stubUserService) List(ctx context.Context, callerEmail string) ([]domain.PublicUser, error) {
	return s.listFn(ctx, callerEmail)
}

func (s *stubUserService) Get(ctx context.Context, email string) (domain.PublicUser, error) {
	return s.getFn(ctx, email)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (domain.PublicUser, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, email string, patch domain.UserPatch) (domain.PublicUser, error) {
	return s.updateFn(ctx, email, patch)
}

func (s *stubUserService) SetAdmin(ctx context.Context, in ports.SetAdminInput) (domain.PublicUser, error) {
	return s.setAdminFn(ctx, in)
}

func (s *stubUserService) RoleCheck(ctx context.Context, email string) (domain.RoleSummary, error) {
	return s.roleCheckFn(ctx, email)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (domain.PublicUser, error) {
			if in.Email != "ana@example.com" || in.Password != "pw" || in.UID != "fb-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.IsAdmin != nil {
				t.Fatalf("isAdmin should be absent")
			}
			return domain.PublicUser{ID: "u1", Email: in.Email}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/users", `{"email":"ana@example.com","password":"pw","uid":"fb-1"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "ana@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	for _, k := range []string{"password", "uid"} {
		if _, ok := resp[k]; ok {
			t.Fatalf("response leaks %s: %s", k, rec.Body.String())
		}
	}
}

func TestUserHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (domain.PublicUser, error) {
			t.Fatalf("should not be called")
			return domain.PublicUser{}, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/users", "not-json")
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Update_MarksImmutableFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"email", `{"email":"other@example.com"}`},
		{"isAdmin bool", `{"isAdmin":true}`},
		{"isAdmin string", `{"isAdmin":"yes"}`},
		{"email number", `{"email":42}`},
		{"isAdmin null", `{"isAdmin":null}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubUserService{
				updateFn: func(ctx context.Context, email string, patch domain.UserPatch) (domain.PublicUser, error) {
					if !patch.TouchesImmutable() {
						t.Fatalf("patch should touch an immutable field: %+v", patch)
					}
					return domain.PublicUser{}, domain.ErrImmutableField
				},
			}
			h := NewUserHandler(stub)

			c, _ := newJSONContext(http.MethodPatch, "/users/ana@example.com", tc.body)
			c.SetParamNames("email")
			c.SetParamValues("ana@example.com")

			if err := h.Update(c); !errors.Is(err, domain.ErrImmutableField) {
				t.Fatalf("expected ErrImmutableField, got %v", err)
			}
		})
	}
}

func TestUserHandler_Update_PassesProfileFields(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, email string, patch domain.UserPatch) (domain.PublicUser, error) {
			if email != "ana@example.com" {
				t.Fatalf("unexpected email %q", email)
			}
			if patch.TouchesImmutable() {
				t.Fatalf("patch should not touch immutable fields")
			}
			if patch.Name == nil || *patch.Name != "Ana" || patch.Phone != nil {
				t.Fatalf("unexpected patch: %+v", patch)
			}
			return domain.PublicUser{Email: email, Name: *patch.Name}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodPatch, "/users/ana@example.com", `{"name":"Ana","email":null}`)
	c.SetParamNames("email")
	c.SetParamValues("ana@example.com")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_SetAdmin_ForwardsRawValue(t *testing.T) {
	stub := &stubUserService{
		setAdminFn: func(ctx context.Context, in ports.SetAdminInput) (domain.PublicUser, error) {
			if in.TargetID != "u2" || in.RequesterEmail != "root@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if _, isString := in.IsAdmin.(string); !isString {
				t.Fatalf("isAdmin should reach the service undecoded, got %T", in.IsAdmin)
			}
			return domain.PublicUser{}, domain.Invalid("isAdmin must be a boolean")
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(http.MethodPatch, "/users/admin/u2", `{"isAdmin":"true","requestingAdminEmail":"root@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("u2")

	if err := h.SetAdmin(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserHandler_List_UsesQueryEmail(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context, callerEmail string) ([]domain.PublicUser, error) {
			if callerEmail != "root@example.com" {
				t.Fatalf("unexpected caller %q", callerEmail)
			}
			return []domain.PublicUser{{Email: "a@example.com"}, {Email: "b@example.com"}}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/users?email=root@example.com", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
}

func TestUserHandler_RoleCheck(t *testing.T) {
	stub := &stubUserService{
		roleCheckFn: func(ctx context.Context, email string) (domain.RoleSummary, error) {
			return domain.RoleSummary{Email: email, Role: domain.DefaultRole}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/users/role-check/ana@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("ana@example.com")

	if err := h.RoleCheck(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isAdmin"] != false || resp["role"] != "user" || resp["email"] != "ana@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Get_PropagatesNotFound(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, email string) (domain.PublicUser, error) {
			return domain.PublicUser{}, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/users/ghost@example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("ghost@example.com")

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Get_DecodesEscapedEmail(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, email string) (domain.PublicUser, error) {
			if email != "a@b.com" {
				t.Fatalf("unexpected email %q", email)
			}
			return domain.PublicUser{Email: email}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/users/a%40b.com", "")
	c.SetParamNames("email")
	c.SetParamValues("a%40b.com")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_RoleCheck_RejectsBadEscape(t *testing.T) {
	stub := &stubUserService{
		roleCheckFn: func(ctx context.Context, email string) (domain.RoleSummary, error) {
			t.Fatalf("service should not be called")
			return domain.RoleSummary{}, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/users/role-check/x", "")
	c.Request().URL.RawPath = "/users/role-check/a%zzb.com"
	c.SetParamNames("email")
	c.SetParamValues("a%zzb.com")

	var he *echo.HTTPError
	if err := h.RoleCheck(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
