package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"docmanager-api/internal/domain/document"
	domain "docmanager-api/internal/domain/user"
	jwtSvc "docmanager-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

type FakeAuthService struct {
	AuthenticateFunc func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (f *FakeAuthService) Authenticate(ctx context.Context, username, password string) (string, *domain.User, error) {
	if f.AuthenticateFunc == nil {
		return "", nil, errors.New("not used")
	}
	return f.AuthenticateFunc(ctx, username, password)
}

type FakeUserService struct {
	RegisterFunc      func(ctx context.Context, username, name, password string) (*domain.User, error)
	ResetPasswordFunc func(ctx context.Context, username, newPassword string) error
	EnsureAdminFunc   func(ctx context.Context, username, name, password string) error
	FindUserByIDFunc  func(ctx context.Context, id domain.UUID) (*domain.User, error)
	ListUsersFunc     func(ctx context.Context) (domain.Summaries, error)
}

func (f *FakeUserService) Register(ctx context.Context, username, name, password string) (*domain.User, error) {
	if f.RegisterFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RegisterFunc(ctx, username, name, password)
}
func (f *FakeUserService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if f.ResetPasswordFunc == nil {
		return errors.New("not used")
	}
	return f.ResetPasswordFunc(ctx, username, newPassword)
}
func (f *FakeUserService) EnsureAdmin(ctx context.Context, username, name, password string) error {
	if f.EnsureAdminFunc == nil {
		return errors.New("not used")
	}
	return f.EnsureAdminFunc(ctx, username, name, password)
}
func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.UUID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) ListUsers(ctx context.Context) (domain.Summaries, error) {
	if f.ListUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListUsersFunc(ctx)
}

type FakeDocumentService struct {
	ListMineFunc    func(ctx context.Context, owner domain.Identity) (document.Documents, error)
	RenameFunc      func(ctx context.Context, owner domain.Identity, id uuid.UUID, newName string) (*document.Document, error)
	DeleteFunc      func(ctx context.Context, owner domain.Identity, id uuid.UUID) (document.DeleteOutcome, error)
	ListAllFunc     func(ctx context.Context) (document.Documents, error)
	ListByUserFunc  func(ctx context.Context, userID domain.UUID) (*domain.User, document.Documents, error)
	AdminDeleteFunc func(ctx context.Context, id uuid.UUID) (document.DeleteOutcome, error)
	StatsFunc       func(ctx context.Context) (document.Stats, error)
}

func (f *FakeDocumentService) ListMine(ctx context.Context, owner domain.Identity) (document.Documents, error) {
	if f.ListMineFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListMineFunc(ctx, owner)
}
func (f *FakeDocumentService) Rename(ctx context.Context, owner domain.Identity, id uuid.UUID, newName string) (*document.Document, error) {
	if f.RenameFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RenameFunc(ctx, owner, id, newName)
}
func (f *FakeDocumentService) Delete(ctx context.Context, owner domain.Identity, id uuid.UUID) (document.DeleteOutcome, error) {
	if f.DeleteFunc == nil {
		return document.DeleteOutcome{}, errors.New("not used")
	}
	return f.DeleteFunc(ctx, owner, id)
}
func (f *FakeDocumentService) ListAll(ctx context.Context) (document.Documents, error) {
	if f.ListAllFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListAllFunc(ctx)
}
func (f *FakeDocumentService) ListByUser(ctx context.Context, userID domain.UUID) (*domain.User, document.Documents, error) {
	if f.ListByUserFunc == nil {
		return nil, nil, errors.New("not used")
	}
	return f.ListByUserFunc(ctx, userID)
}
func (f *FakeDocumentService) AdminDelete(ctx context.Context, id uuid.UUID) (document.DeleteOutcome, error) {
	if f.AdminDeleteFunc == nil {
		return document.DeleteOutcome{}, errors.New("not used")
	}
	return f.AdminDeleteFunc(ctx, id)
}
func (f *FakeDocumentService) Stats(ctx context.Context) (document.Stats, error) {
	if f.StatsFunc == nil {
		return document.Stats{}, errors.New("not used")
	}
	return f.StatsFunc(ctx)
}

type FakeUploadService struct {
	UploadFunc func(ctx context.Context, owner domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults
}

func (f *FakeUploadService) Upload(ctx context.Context, owner domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults {
	return f.UploadFunc(ctx, owner, category, files)
}

func newTestEngine(t *testing.T) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New(), jwtSvc.New(testSecret)
}

func bearer(t *testing.T, j *jwtSvc.Service, id uuid.UUID, role domain.Role) map[string]string {
	t.Helper()
	tok, err := j.GenerateJWT(id.String(), "tester", string(role), time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
