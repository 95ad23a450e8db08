package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"petmate/internal/platform/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Pet
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, owner string) ([]Pet, error) {
	var out []Pet
	for _, p := range r.byID {
		if p.OwnerUserID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListCandidates(ctx context.Context, excludeOwner string, excludeIDs map[string]struct{}, limit int) ([]Pet, error) {
	return nil, nil
}

type testCompleter struct {
	calls []string
	err   error
}

func (c *testCompleter) MarkProfileCompleted(ctx context.Context, userID string) error {
	c.calls = append(c.calls, userID)
	return c.err
}

func newTestService() (*Service, *testRepo, *testCompleter) {
	repo := &testRepo{byID: map[string]Pet{}}
	comp := &testCompleter{}
	svc := NewService(repo, comp, nil)
	svc.now = func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) }
	return svc, repo, comp
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func validProfile() ProfileInput {
	return ProfileInput{
		Name:        " Max ",
		Species:     "Dog",
		Breed:       "Golden Retriever",
		Age:         intPtr(3),
		Description: "Friendly and playful",
	}
}

func TestService_Create_NormalizesAndMarksProfile(t *testing.T) {
	svc, repo, comp := newTestService()

	p, err := svc.Create(context.Background(), "u-1", validProfile())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Max", p.Name)
	assert.Equal(t, SpeciesDog, p.Species)
	assert.Equal(t, 3, p.Age)
	assert.Equal(t, "u-1", p.OwnerUserID)
	assert.Contains(t, repo.byID, p.ID)
	assert.Equal(t, []string{"u-1"}, comp.calls)
}

func TestService_Create_CompleterFailureDoesNotBlock(t *testing.T) {
	svc, repo, comp := newTestService()
	comp.err = errors.New("boom")

	p, err := svc.Create(context.Background(), "u-1", validProfile())
	require.NoError(t, err)
	assert.Contains(t, repo.byID, p.ID)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _, comp := newTestService()

	in := validProfile()
	in.Name = "  "
	in.Species = "dragon"
	in.Age = intPtr(-1)
	in.ImageURL = "not a url"

	_, err := svc.Create(context.Background(), "u-1", in)

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Pet name is required", verr.Fields["name"])
	assert.Equal(t, "Unknown pet type", verr.Fields["type"])
	assert.Equal(t, "Age must be a non-negative number", verr.Fields["age"])
	assert.Equal(t, "Image must be a valid URL", verr.Fields["image"])
	assert.Empty(t, comp.calls)
}

func TestService_Create_MissingAge(t *testing.T) {
	svc, _, _ := newTestService()

	in := validProfile()
	in.Age = nil

	_, err := svc.Create(context.Background(), "u-1", in)
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "age")
}

func TestService_Update_PatchesOnlyGivenFields(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.Create(context.Background(), "u-1", validProfile())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), p.ID, "u-1", PatchInput{
		Age:         intPtr(4),
		Description: strPtr("Now a bit calmer"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Max", updated.Name)
	assert.Equal(t, "Golden Retriever", updated.Breed)
	assert.Equal(t, 4, updated.Age)
	assert.Equal(t, "Now a bit calmer", updated.Description)
}

func TestService_Update_OwnerOnly(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.Create(context.Background(), "u-1", validProfile())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), p.ID, "u-2", PatchInput{Name: strPtr("Rex")})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.Delete(context.Background(), p.ID, "u-2"), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), p.ID, "u-1"))

	_, err = svc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_InvalidPatch(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.Create(context.Background(), "u-1", validProfile())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), p.ID, "u-1", PatchInput{Breed: strPtr("")})
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Breed is required", verr.Fields["breed"])
}

func TestService_Seed_IsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	items := []Pet{{ID: "fixture-max", Name: "Max", Species: SpeciesDog, Breed: "Golden Retriever", Age: 3}}

	require.NoError(t, svc.Seed(context.Background(), items))
	require.NoError(t, svc.Seed(context.Background(), items))

	assert.Len(t, repo.byID, 1)
	assert.False(t, repo.byID["fixture-max"].CreatedAt.IsZero())
}

func TestService_OwnerOf(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.Create(context.Background(), "u-9", validProfile())
	require.NoError(t, err)

	owner, err := svc.OwnerOf(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "u-9", owner)

	_, err = svc.OwnerOf(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
