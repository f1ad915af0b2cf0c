package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/domain/event"
	"docmanager-api/internal/domain/user"
)

// fakeUserRepo keeps users in memory.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*user.User
	counts map[uuid.UUID]int64
	err    error
}

func newFakeUserRepo(us ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*user.User{}, counts: map[uuid.UUID]int64{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FetchUserByID(_ context.Context, id user.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FetchUserByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FetchUserSummaries(_ context.Context) (user.Summaries, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := user.Summaries{}
	for _, u := range r.users {
		out = append(out, &user.Summary{User: *u, DocumentCount: r.counts[u.ID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == req.Username {
			return nil, user.ErrUsernameTaken
		}
	}
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	r.users[req.ID] = &req
	cp := req
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id user.UUID, hash string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.PasswordHash = hash
	cp := *u
	return &cp, nil
}

// fakeDocRepo implements both document repositories in memory.
type fakeDocRepo struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]*document.Document
	orphans   []*document.OrphanedBlob
	createErr error
	deleteErr error
	orphanErr error
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: map[uuid.UUID]*document.Document{}}
}

func (r *fakeDocRepo) add(d *document.Document) *document.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.docs[d.ID] = d
	return d
}

func (r *fakeDocRepo) CreateDocument(_ context.Context, req *document.Document) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	d := *req
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	r.docs[d.ID] = &d
	cp := d
	return &cp, nil
}

func (r *fakeDocRepo) FetchByOwner(_ context.Context, ownerID uuid.UUID) (document.Documents, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := document.Documents{}
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) FetchAll(_ context.Context) (document.Documents, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := document.Documents{}
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocRepo) FetchByID(_ context.Context, id uuid.UUID) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocRepo) RenameOwned(_ context.Context, id, ownerID uuid.UUID, name string) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.OwnerID != ownerID {
		return nil, nil
	}
	d.OriginalFilename = name
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (r *fakeDocRepo) DeleteDocument(_ context.Context, id uuid.UUID, orphan *document.OrphanedBlob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.docs[id]; !ok {
		return document.ErrNotFound
	}
	delete(r.docs, id)
	if orphan != nil {
		o := *orphan
		o.ID = uuid.New()
		r.orphans = append(r.orphans, &o)
	}
	return nil
}

func (r *fakeDocRepo) FetchStats(_ context.Context) (document.Stats, error) {
	return document.Stats{Total: int64(len(r.docs))}, nil
}

func (r *fakeDocRepo) RecordOrphan(_ context.Context, o *document.OrphanedBlob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.orphanErr != nil {
		return r.orphanErr
	}
	cp := *o
	cp.ID = uuid.New()
	r.orphans = append(r.orphans, &cp)
	return nil
}

func (r *fakeDocRepo) FetchPendingOrphans(_ context.Context, maxAttempts, limit int) (document.OrphanedBlobs, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := document.OrphanedBlobs{}
	for _, o := range r.orphans {
		if len(out) == limit {
			break
		}
		if maxAttempts <= 0 || o.Attempts < maxAttempts {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) ResolveOrphan(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orphans {
		if o.ID == id {
			r.orphans = append(r.orphans[:i], r.orphans[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeDocRepo) MarkOrphanAttempt(_ context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orphans {
		if o.ID == id {
			o.Attempts++
			o.Reason = reason
		}
	}
	return nil
}

// fakeStorage is a bucket in a map.
type fakeStorage struct {
	mu          sync.Mutex
	objects     map[string][]byte
	lastObject  document.Object
	putErr      error
	DeleteFunc  func(key string) error
	deleteCalls []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Put(_ context.Context, obj document.Object) (document.StorageRef, error) {
	if s.putErr != nil {
		return document.StorageRef{}, s.putErr
	}
	b, err := io.ReadAll(obj.Body)
	if err != nil {
		return document.StorageRef{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Key] = b
	s.lastObject = obj
	return document.StorageRef{Bucket: "user-documents", Key: obj.Key, URL: "https://cdn.test/user-documents/" + obj.Key}, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls = append(s.deleteCalls, key)
	if s.DeleteFunc != nil {
		if err := s.DeleteFunc(key); err != nil {
			return err
		}
	}
	delete(s.objects, key)
	return nil
}

// fakeEvents records what would have gone to the broker.
type fakeEvents struct {
	mu     sync.Mutex
	events []event.Event
}

func (f *fakeEvents) Publish(_ context.Context, e event.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeEvents) actions() []event.Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]event.Action, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Action)
	}
	return out
}

var errBoom = errors.New("boom")

type testFile struct {
	name        string
	contentType string
	body        []byte
}

// fileHeaders builds real multipart headers so Open works like in a request.
func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["files"]
}

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"), make([]byte, 32)...)
)
