// Package testsupport holds in-memory stand-ins for the storage ports, shared by service and router tests.
package testsupport

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
)

// UserRepo is an insertion-ordered in-memory repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]entity.User
	// Err, when set, is returned by every call.
	Err error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: map[string]entity.User{}}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.byID[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, id := range r.order {
		if u := r.byID[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) List(_ context.Context, page repository.Page) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	ids := window(r.order, page)
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		u := r.byID[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.byID, id)
	r.order = remove(r.order, id)
	return nil
}

func (r *UserRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// CourseRepo is an insertion-ordered in-memory repository.CourseRepository.
type CourseRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]entity.Course
	Err   error
}

func NewCourseRepo() *CourseRepo {
	return &CourseRepo{byID: map[string]entity.Course{}}
}

func (r *CourseRepo) List(_ context.Context, page repository.Page) ([]entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	ids := window(r.order, page)
	out := make([]entity.Course, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(r.byID[id]))
	}
	return out, nil
}

func (r *CourseRepo) GetByID(_ context.Context, id string) (entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(c), nil
}

func (r *CourseRepo) Create(_ context.Context, c entity.Course) (entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	doc := clone(c)
	doc["id"] = uuid.NewString()
	r.byID[doc.ID()] = doc
	r.order = append(r.order, doc.ID())
	return clone(doc), nil
}

func (r *CourseRepo) Update(_ context.Context, id string, patch map[string]any) (repository.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := repository.UpdateResult{Acknowledged: true}
	if r.Err != nil {
		return repository.UpdateResult{}, r.Err
	}
	c, ok := r.byID[id]
	if !ok {
		return res, nil
	}
	res.MatchedCount = 1
	next := clone(c)
	for k, v := range patch {
		if k != "id" {
			next[k] = v
		}
	}
	if !reflect.DeepEqual(next, c) {
		res.ModifiedCount = 1
		r.byID[id] = next
	}
	return res, nil
}

func (r *CourseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.byID, id)
	r.order = remove(r.order, id)
	return nil
}

// Avatars records saved avatars in memory.
type Avatars struct {
	mu    sync.Mutex
	Files map[string][]byte
	Err   error
}

func NewAvatars() *Avatars {
	return &Avatars{Files: map[string][]byte{}}
}

func (a *Avatars) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return "", a.Err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	a.Files[name] = b
	return name, nil
}

func (a *Avatars) Delete(_ context.Context, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.Files, name)
	return nil
}

func (a *Avatars) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Files)
}

// Publisher captures published jobs.
type Publisher struct {
	mu   sync.Mutex
	Jobs []any
	Err  error
}

func (p *Publisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Jobs = append(p.Jobs, body)
	return nil
}

var ErrBoom = errors.New("boom")

func window(ids []string, page repository.Page) []string {
	page = page.Normalize()
	start := page.Offset()
	if start >= len(ids) {
		return nil
	}
	end := start + page.Limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end]
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func clone(c entity.Course) entity.Course {
	out := make(entity.Course, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Index is an in-memory DocumentIndexer; Search matches nothing but returns every stored doc.
type Index struct {
	mu   sync.Mutex
	Docs map[string]any
	Err  error
}

func NewIndex() *Index {
	return &Index{Docs: map[string]any{}}
}

func (i *Index) Put(_ context.Context, id string, doc any) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return i.Err
	}
	i.Docs[id] = doc
	return nil
}

func (i *Index) Remove(_ context.Context, id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return i.Err
	}
	delete(i.Docs, id)
	return nil
}

func (i *Index) Search(_ context.Context, _ string, _ int) ([]map[string]any, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return nil, i.Err
	}
	out := make([]map[string]any, 0, len(i.Docs))
	for id := range i.Docs {
		out = append(out, map[string]any{"id": id})
	}
	return out, nil
}
