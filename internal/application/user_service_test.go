package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
	"github.com/oksasatya/go-course-api/internal/testsupport"
	"github.com/oksasatya/go-course-api/pkg/apperror"
	"github.com/oksasatya/go-course-api/pkg/helpers"
	"github.com/oksasatya/go-course-api/pkg/mailer"
)

type userFixture struct {
	svc     *UserService
	repo    *testsupport.UserRepo
	avatars *testsupport.Avatars
	index   *testsupport.Index
	mail    *testsupport.Publisher
	jwt     *helpers.JWTManager
}

func newUserFixture(t *testing.T) userFixture {
	t.Helper()
	jwt, err := helpers.NewJWTManager("secret", time.Hour)
	require.NoError(t, err)
	f := userFixture{
		repo:    testsupport.NewUserRepo(),
		avatars: testsupport.NewAvatars(),
		index:   testsupport.NewIndex(),
		mail:    &testsupport.Publisher{},
		jwt:     jwt,
	}
	f.svc = NewUserService(f.repo, jwt, f.avatars, helpers.DiscardLogger())
	f.svc.Index = f.index
	f.svc.Mail = f.mail
	f.svc.AppName = "courses"
	return f
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		FirstName:         "John",
		LastName:          "Doe",
		Email:             email,
		Password:          "pw123",
		AvatarContentType: "image/png",
		Avatar:            strings.NewReader("png-bytes"),
	}
}

func TestUserService_Register(t *testing.T) {
	f := newUserFixture(t)

	u, err := f.svc.Register(context.Background(), registerInput("john@doe.com"))
	require.NoError(t, err)

	assert.Len(t, u.ID, 36)
	assert.Equal(t, entity.RoleDefault, u.Role)
	assert.NotEqual(t, "pw123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "pw123"))
	assert.Regexp(t, `^user-[0-9a-f-]{36}\.png$`, u.Avatar)
	assert.Equal(t, "png-bytes", string(f.avatars.Files[u.Avatar]))

	id, err := f.jwt.Verify(u.Token)
	require.NoError(t, err)
	assert.Equal(t, helpers.Identity{Email: "john@doe.com", UserID: u.ID, Role: "default"}, id)

	stored, err := f.repo.GetByEmail(context.Background(), "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, u.Token, stored.Token)

	assert.Contains(t, f.index.Docs, u.ID)
	require.Len(t, f.mail.Jobs, 1)
	job := f.mail.Jobs[0].(mailer.EmailJob)
	assert.Equal(t, "john@doe.com", job.To)
	assert.Equal(t, "welcome", job.Template)
}

func TestUserService_RegisterConflict(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.svc.Register(context.Background(), registerInput("john@doe.com"))
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), registerInput("john@doe.com"))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, 1, f.repo.Len())
	assert.Equal(t, 1, f.avatars.Len())
}

func TestUserService_RegisterKeepsRole(t *testing.T) {
	f := newUserFixture(t)
	in := registerInput("boss@doe.com")
	in.Role = entity.RoleManager

	u, err := f.svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, u.Role)
}

func TestUserService_RegisterRemovesAvatarOnFailure(t *testing.T) {
	f := newUserFixture(t)
	// lookup passes, insert fails
	failing := &failingCreate{UserRepo: f.repo}
	f.svc.Repo = failing

	_, err := f.svc.Register(context.Background(), registerInput("john@doe.com"))
	require.ErrorIs(t, err, testsupport.ErrBoom)
	assert.Equal(t, 0, f.avatars.Len())
	assert.Empty(t, f.mail.Jobs)
}

type failingCreate struct {
	*testsupport.UserRepo
}

func (r *failingCreate) Create(context.Context, *entity.User) error { return testsupport.ErrBoom }

func TestUserService_RegisterSideEffectsAreBestEffort(t *testing.T) {
	f := newUserFixture(t)
	f.index.Err = testsupport.ErrBoom
	f.mail.Err = testsupport.ErrBoom

	u, err := f.svc.Register(context.Background(), registerInput("john@doe.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, u.Token)
}

func TestUserService_Login(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.svc.Register(context.Background(), registerInput("john@doe.com"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		kind     apperror.Kind
	}{
		{"both missing", "", "", apperror.KindBadRequest},
		{"unknown email", "nobody@doe.com", "pw123", apperror.KindNotFound},
		{"wrong password", "john@doe.com", "nope", apperror.KindInvalidCredentials},
		{"only email", "john@doe.com", "", apperror.KindInvalidCredentials},
		{"only password", "", "pw123", apperror.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	token, err := f.svc.Login(context.Background(), "john@doe.com", "pw123")
	require.NoError(t, err)
	id, err := f.jwt.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)

	stored, err := f.repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Token, stored.Token, "login does not rewrite the stored token")
}

func TestUserService_GetListDelete(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	a, err := f.svc.Register(ctx, registerInput("a@doe.com"))
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, registerInput("b@doe.com"))
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@doe.com", got.Email)

	_, err = f.svc.Get(ctx, "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	list, err := f.svc.List(ctx, repository.Page{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b@doe.com", list[0].Email)

	require.Equal(t, 2, f.avatars.Len())
	require.NoError(t, f.svc.Delete(ctx, a.ID))
	require.NoError(t, f.svc.Delete(ctx, a.ID))
	assert.NotContains(t, f.index.Docs, a.ID)
	assert.NotContains(t, f.avatars.Files, a.Avatar)
	assert.Equal(t, 1, f.avatars.Len())
	_, err = f.svc.Get(ctx, a.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUserService_Register_PasswordTooLong(t *testing.T) {
	f := newUserFixture(t)
	in := registerInput("long@doe.com")
	in.Password = strings.Repeat("é", 40) // 80 bytes, 40 runes

	_, err := f.svc.Register(context.Background(), in)
	assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
	assert.Equal(t, 0, f.repo.Len())
	assert.Equal(t, 0, f.avatars.Len())
}

func TestAvatarName(t *testing.T) {
	assert.Regexp(t, `^user-.+\.jpeg$`, avatarName("image/jpeg"))
	assert.Regexp(t, `^user-.+\.png$`, avatarName("image/png; charset=binary"))
	assert.Regexp(t, `^user-.+\.bin$`, avatarName(""))
}
