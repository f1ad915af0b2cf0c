package rest

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docmanager-api/internal/application/services"
	"docmanager-api/internal/domain/document"
	domain "docmanager-api/internal/domain/user"
)

type testFile struct {
	name string
	data []byte
}

func newUploadRouter(t *testing.T, us *FakeUploadService, maxSize int64, maxFiles int) (*gin.Engine, map[string]string) {
	t.Helper()
	r, j := newTestEngine(t)
	NewUploadController(r, us, zap.NewNop(), j, maxSize, maxFiles)
	return r, bearer(t, j, uuid.New(), domain.RoleUser)
}

func multipartReq(t *testing.T, category string, files ...testFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	if category != "" {
		require.NoError(t, w.WriteField("category", category))
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, RouteUpload, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(r *gin.Engine, req *http.Request, headers map[string]string) *httptest.ResponseRecorder {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestUploadController_RequiresSession(t *testing.T) {
	r, _ := newUploadRouter(t, &FakeUploadService{}, 1<<20, 10)

	rr := serve(r, multipartReq(t, "", testFile{"a.pdf", []byte("%PDF-1.4")}), nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUploadController_UploadHandler(t *testing.T) {
	okDoc := func(name string) *document.Document {
		return &document.Document{
			ID:               uuid.New(),
			StorageKey:       uuid.NewString() + ".pdf",
			OriginalFilename: name,
			MimeType:         "application/pdf",
			Category:         document.DefaultCategory,
		}
	}

	tests := []struct {
		name       string
		files      []testFile
		category   string
		upload     func(ctx context.Context, o domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults
		wantCode   int
		wantOK     bool
		wantData   int
		wantErrors []string
		wantError  string
	}{
		{
			name:      "no files",
			wantCode:  http.StatusBadRequest,
			wantError: "No files uploaded",
		},
		{
			name:      "too many files",
			files:     []testFile{{"a.pdf", []byte("a")}, {"b.pdf", []byte("b")}, {"c.pdf", []byte("c")}},
			wantCode:  http.StatusBadRequest,
			wantError: "too many files in one upload",
		},
		{
			name:     "all accepted",
			files:    []testFile{{"a.pdf", []byte("%PDF-1.4")}},
			category: "tax",
			upload: func(ctx context.Context, o domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults {
				if category != "tax" || len(files) != 1 {
					return document.UploadResults{{Filename: "a.pdf", Err: errors.New("unexpected input")}}
				}
				return document.UploadResults{{Filename: "a.pdf", Document: okDoc("a.pdf")}}
			},
			wantCode: http.StatusOK,
			wantOK:   true,
			wantData: 1,
		},
		{
			name:  "partial success",
			files: []testFile{{"a.pdf", []byte("%PDF-1.4")}, {"b.exe", []byte("MZ")}},
			upload: func(ctx context.Context, o domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults {
				return document.UploadResults{
					{Filename: "a.pdf", Document: okDoc("a.pdf")},
					{Filename: "b.exe", Err: &services.ValidationError{Field: "file", Reason: "file type not allowed"}},
				}
			},
			wantCode:   http.StatusOK,
			wantData:   1,
			wantErrors: []string{"file type not allowed"},
		},
		{
			name:  "all rejected",
			files: []testFile{{"b.exe", []byte("MZ")}},
			upload: func(ctx context.Context, o domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults {
				return document.UploadResults{
					{Filename: "b.exe", Err: &services.ValidationError{Field: "file", Reason: "file type not allowed"}},
				}
			},
			wantCode:   http.StatusBadRequest,
			wantError:  "no valid files uploaded",
			wantErrors: []string{"file type not allowed"},
		},
		{
			name:  "storage down",
			files: []testFile{{"a.pdf", []byte("%PDF-1.4")}},
			upload: func(ctx context.Context, o domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults {
				return document.UploadResults{
					{Filename: "a.pdf", Err: errors.Join(services.ErrStorage, errors.New("bucket unreachable"))},
				}
			},
			wantCode:   http.StatusInternalServerError,
			wantError:  "upload failed",
			wantErrors: []string{"upload failed"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, auth := newUploadRouter(t, &FakeUploadService{UploadFunc: tt.upload}, 1<<20, 2)

			rr := serve(r, multipartReq(t, tt.category, tt.files...), auth)
			require.Equal(t, tt.wantCode, rr.Code, rr.Body.String())
			assert.NotContains(t, rr.Body.String(), "bucket unreachable")

			resp := decode[struct {
				Success bool             `json:"success"`
				Data    []map[string]any `json:"data"`
				Error   string           `json:"error"`
				Errors  []struct {
					Filename string `json:"filename"`
					Error    string `json:"error"`
				} `json:"errors"`
			}](t, rr)

			assert.Equal(t, tt.wantOK, resp.Success)
			assert.Len(t, resp.Data, tt.wantData)
			assert.Equal(t, tt.wantError, resp.Error)
			require.Len(t, resp.Errors, len(tt.wantErrors))
			for i, msg := range tt.wantErrors {
				assert.Equal(t, msg, resp.Errors[i].Error)
			}
		})
	}
}

func TestUploadController_BodyTooLarge(t *testing.T) {
	called := false
	r, auth := newUploadRouter(t, &FakeUploadService{
		UploadFunc: func(ctx context.Context, o domain.Identity, category string, files []*multipart.FileHeader) document.UploadResults {
			called = true
			return nil
		},
	}, 16, 1)

	big := bytes.Repeat([]byte("x"), int(formOverhead)+1024)
	rr := serve(r, multipartReq(t, "", testFile{"big.pdf", big}), auth)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.False(t, called)
}
