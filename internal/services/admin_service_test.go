package services_test

import (
	"context"
	"testing"

	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/damianut/public-InterSynergy/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func intPtr(i int) *int { return &i }

func TestAdminCreateUserEnabledImmediately(t *testing.T) {
	var created *models.User
	repo := &mockUserRepo{
		existsByEmailFunc: func(email string) (bool, error) { return false, nil },
		createFunc: func(user *models.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}
	mirror := &fakeMirror{message: "mirror ok"}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, mirror, &fakeStorage{}))

	fl := &services.Flashes{}
	in := services.AdminCreateInput{
		Email:    "new@b.com",
		Password: "secret_1",
		Role:     models.RoleUser,
		Profile:  services.ProfileUpdate{Name: strPtr("Jan"), Rating: intPtr(7)},
	}
	require.True(t, svc.CreateUser(context.Background(), in, fl))

	require.NotNil(t, created)
	assert.True(t, created.Enabled)
	assert.Nil(t, created.BlockedConfirmationToken)
	assert.Equal(t, []string{models.RoleUser}, created.Roles)
	assert.Equal(t, 7, *created.Rating)
	assert.NotNil(t, created.LoginDate)
	assert.Equal(t, []uuid.UUID{created.ID}, mirror.created)
	assert.Contains(t, flashMessages(fl), services.MsgAdminCreated)
}

func TestAdminCreateUserAdminGetsBothRoles(t *testing.T) {
	var created *models.User
	repo := &mockUserRepo{
		existsByEmailFunc: func(email string) (bool, error) { return false, nil },
		createFunc:        func(user *models.User) error { created = user; return nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	fl := &services.Flashes{}
	in := services.AdminCreateInput{Email: "boss@b.com", Password: "secret_1", Role: models.RoleAdmin}
	require.True(t, svc.CreateUser(context.Background(), in, fl))
	assert.Equal(t, []string{models.RoleUser, models.RoleAdmin}, created.Roles)
}

func TestAdminCreateUserRejectsUnknownRole(t *testing.T) {
	repo := &mockUserRepo{
		existsByEmailFunc: func(email string) (bool, error) { return false, nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	fl := &services.Flashes{}
	in := services.AdminCreateInput{Email: "x@b.com", Password: "secret_1", Role: "superuser"}
	assert.False(t, svc.CreateUser(context.Background(), in, fl))
	assert.Contains(t, flashMessages(fl), services.MsgAdminBadRole)
}

func TestAdminCreateUserRejectsOutOfRangeRating(t *testing.T) {
	repo := &mockUserRepo{
		existsByEmailFunc: func(email string) (bool, error) { return false, nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	for _, rating := range []int{0, 11, -3} {
		fl := &services.Flashes{}
		in := services.AdminCreateInput{
			Email:    "x@b.com",
			Password: "secret_1",
			Role:     models.RoleUser,
			Profile:  services.ProfileUpdate{Rating: intPtr(rating)},
		}
		assert.False(t, svc.CreateUser(context.Background(), in, fl))
		assert.Contains(t, flashMessages(fl), services.MsgAdminBadRating)
	}
}

func TestAdminEditUserPasswordSentinelKeepsHash(t *testing.T) {
	user := enabledUser("a@b.com", "secret_1")
	oldHash := user.PasswordHash
	repo := &mockUserRepo{
		getByIDFunc: func(id uuid.UUID) (*models.User, error) { return user, nil },
		updateFunc:  func(u *models.User) error { return nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	fl := &services.Flashes{}
	in := services.AdminEditInput{
		Password: "n",
		Profile:  services.ProfileUpdate{Interests: strPtr("go"), RetainCV: true},
	}
	require.True(t, svc.EditUser(context.Background(), user.ID, in, fl))
	assert.Equal(t, oldHash, user.PasswordHash)
	assert.Contains(t, flashMessages(fl), services.MsgProfileUpdated)
}

func TestAdminEditUserChangesPassword(t *testing.T) {
	user := enabledUser("a@b.com", "secret_1")
	repo := &mockUserRepo{
		getByIDFunc: func(id uuid.UUID) (*models.User, error) { return user, nil },
		updateFunc:  func(u *models.User) error { return nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	fl := &services.Flashes{}
	in := services.AdminEditInput{
		Password: "brand_new_1",
		Profile:  services.ProfileUpdate{RetainCV: true},
	}
	require.True(t, svc.EditUser(context.Background(), user.ID, in, fl))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("brand_new_1")))
}

func TestAdminEditUserAppliesRating(t *testing.T) {
	user := enabledUser("a@b.com", "secret_1")
	repo := &mockUserRepo{
		getByIDFunc: func(id uuid.UUID) (*models.User, error) { return user, nil },
		updateFunc:  func(u *models.User) error { return nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	fl := &services.Flashes{}
	in := services.AdminEditInput{
		Password: "n",
		Profile:  services.ProfileUpdate{Rating: intPtr(9), RetainCV: true},
	}
	require.True(t, svc.EditUser(context.Background(), user.ID, in, fl))
	require.NotNil(t, user.Rating)
	assert.Equal(t, 9, *user.Rating)

	// A submit without a rating keeps the stored value.
	fl = &services.Flashes{}
	in = services.AdminEditInput{
		Password: "n",
		Profile:  services.ProfileUpdate{Interests: strPtr("go"), RetainCV: true},
	}
	require.True(t, svc.EditUser(context.Background(), user.ID, in, fl))
	assert.Equal(t, 9, *user.Rating)
}

func TestAdminEditUserEmptyRoleKeepsStoredRoles(t *testing.T) {
	user := enabledUser("boss@b.com", "secret_1")
	user.Roles = []string{models.RoleUser, models.RoleAdmin}
	repo := &mockUserRepo{
		getByIDFunc: func(id uuid.UUID) (*models.User, error) { return user, nil },
		updateFunc:  func(u *models.User) error { return nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	fl := &services.Flashes{}
	in := services.AdminEditInput{Password: "n", Profile: services.ProfileUpdate{RetainCV: true}}
	require.True(t, svc.EditUser(context.Background(), user.ID, in, fl))
	assert.Equal(t, []string{models.RoleUser, models.RoleAdmin}, user.Roles)
}

func TestAdminEditUserNotFound(t *testing.T) {
	repo := &mockUserRepo{
		getByIDFunc: func(id uuid.UUID) (*models.User, error) { return nil, nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	fl := &services.Flashes{}
	assert.False(t, svc.EditUser(context.Background(), uuid.New(), services.AdminEditInput{Password: "n"}, fl))
	assert.Contains(t, flashMessages(fl), services.MsgAdminUser404)
}

func TestAdminDeleteUserRemovesCVAndMirrorRow(t *testing.T) {
	user := enabledUser("a@b.com", "secret_1")
	user.CVFilename = strPtr("stored-cv.pdf")

	var deleted uuid.UUID
	repo := &mockUserRepo{
		getByIDFunc: func(id uuid.UUID) (*models.User, error) { return user, nil },
		deleteFunc:  func(id uuid.UUID) error { deleted = id; return nil },
	}
	store := &fakeStorage{}
	mirror := &fakeMirror{message: "mirror ok"}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, mirror, store))

	fl := &services.Flashes{}
	require.True(t, svc.DeleteUser(context.Background(), user.ID, fl))
	assert.Equal(t, user.ID, deleted)
	assert.Equal(t, []string{"stored-cv.pdf"}, store.removed)
	assert.Equal(t, []uuid.UUID{user.ID}, mirror.deleted)
	assert.Contains(t, flashMessages(fl), "mirror ok")
}

func TestAdminDeleteUserSurvivesCVFailure(t *testing.T) {
	user := enabledUser("a@b.com", "secret_1")
	user.CVFilename = strPtr("stored-cv.pdf")

	var deleted bool
	repo := &mockUserRepo{
		getByIDFunc: func(id uuid.UUID) (*models.User, error) { return user, nil },
		deleteFunc:  func(id uuid.UUID) error { deleted = true; return nil },
	}
	store := &fakeStorage{rmErr: assert.AnError}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, store))

	fl := &services.Flashes{}
	require.True(t, svc.DeleteUser(context.Background(), user.ID, fl))
	assert.True(t, deleted)
	assert.Contains(t, flashMessages(fl), services.MsgPDFRemoveFail)
}

func TestListUsersSummarizesAccounts(t *testing.T) {
	users := []models.User{
		{ID: uuid.New(), Email: "a@b.com", Enabled: true, Name: strPtr("Jan")},
		{ID: uuid.New(), Email: "c@d.com", Enabled: false, FailedLogin: 3},
	}
	repo := &mockUserRepo{
		getAllFunc: func() ([]models.User, error) { return users, nil },
	}
	svc := services.NewAdminService(newTestFlow(repo, &fakeMailer{}, &fakeMirror{}, &fakeStorage{}))

	got, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a@b.com", got[0].Email)
	assert.Equal(t, "Jan", *got[0].Name)
	assert.Equal(t, 3, got[1].FailedLogin)
}
