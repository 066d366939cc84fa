package cms

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSectionRepo struct {
	byKey map[string]Section
}

func (m *memSectionRepo) Upsert(ctx context.Context, s Section) error {
	if old, ok := m.byKey[s.Key]; ok {
		s.ID = old.ID
	}
	m.byKey[s.Key] = s
	return nil
}

func (m *memSectionRepo) GetByKey(ctx context.Context, key string) (Section, error) {
	s, ok := m.byKey[key]
	if !ok {
		return Section{}, ErrNotFound
	}
	return s, nil
}

func (m *memSectionRepo) List(ctx context.Context, publishedOnly bool) ([]Section, error) {
	var out []Section
	for _, s := range m.byKey {
		if publishedOnly && !s.Published {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memSectionRepo) Delete(ctx context.Context, key string) error {
	if _, ok := m.byKey[key]; !ok {
		return ErrNotFound
	}
	delete(m.byKey, key)
	return nil
}

type memSliderRepo struct {
	byID map[uuid.UUID]Slider
}

func (m *memSliderRepo) Create(ctx context.Context, s Slider) error {
	m.byID[s.ID] = s
	return nil
}

func (m *memSliderRepo) Update(ctx context.Context, s Slider) error {
	if _, ok := m.byID[s.ID]; !ok {
		return ErrNotFound
	}
	m.byID[s.ID] = s
	return nil
}

func (m *memSliderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *memSliderRepo) List(ctx context.Context, activeOnly bool) ([]Slider, error) {
	var out []Slider
	for _, s := range m.byID {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type memBannerRepo struct {
	byID map[uuid.UUID]Banner
}

func (m *memBannerRepo) Create(ctx context.Context, b Banner) error {
	m.byID[b.ID] = b
	return nil
}

func (m *memBannerRepo) Update(ctx context.Context, b Banner) error {
	if _, ok := m.byID[b.ID]; !ok {
		return ErrNotFound
	}
	m.byID[b.ID] = b
	return nil
}

func (m *memBannerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *memBannerRepo) List(ctx context.Context, placement string, activeOnly bool) ([]Banner, error) {
	var out []Banner
	for _, b := range m.byID {
		if placement != "" && b.Placement != placement {
			continue
		}
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func newTestCMS() UseCase {
	return NewService(
		&memSectionRepo{byKey: map[string]Section{}},
		&memSliderRepo{byID: map[uuid.UUID]Slider{}},
		&memBannerRepo{byID: map[uuid.UUID]Banner{}},
	)
}

func TestUpsertSection(t *testing.T) {
	svc := newTestCMS()
	ctx := t.Context()

	s, err := svc.UpsertSection(ctx, Section{Key: "  About-Us  ", Title: "About", Body: "v1", Published: true})
	require.NoError(t, err)
	// Keys are normalized so lookups agree regardless of input casing.
	assert.Equal(t, "about-us", s.Key)
	assert.NotEqual(t, uuid.Nil, s.ID)

	// A second upsert on the same key replaces the content.
	s2, err := svc.UpsertSection(ctx, Section{Key: "ABOUT-US", Title: "About", Body: "v2", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "about-us", s2.Key)

	got, err := svc.GetSection(ctx, "About-Us", false)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Body)

	_, err = svc.UpsertSection(ctx, Section{Key: "   "})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestGetSectionPublishedOnly(t *testing.T) {
	svc := newTestCMS()
	ctx := t.Context()

	_, err := svc.UpsertSection(ctx, Section{Key: "draft", Body: "wip", Published: false})
	require.NoError(t, err)

	// Unpublished content is invisible to the public surface but not to admin.
	_, err = svc.GetSection(ctx, "draft", true)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetSection(ctx, "draft", false)
	require.NoError(t, err)
	assert.Equal(t, "wip", got.Body)
}

func TestSliders(t *testing.T) {
	svc := newTestCMS()
	ctx := t.Context()

	_, err := svc.CreateSlider(ctx, Slider{Caption: "no image"})
	var ve ErrValidation
	assert.ErrorAs(t, err, &ve)

	active, err := svc.CreateSlider(ctx, Slider{Image: "s3://one.png", Active: true})
	require.NoError(t, err)
	_, err = svc.CreateSlider(ctx, Slider{Image: "s3://two.png", Active: false})
	require.NoError(t, err)

	public, err := svc.ListSliders(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, active.ID, public[0].ID)

	all, err := svc.ListSliders(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBannersByPlacement(t *testing.T) {
	svc := newTestCMS()
	ctx := t.Context()

	_, err := svc.CreateBanner(ctx, Banner{Image: "s3://home.png", Placement: "home", Active: true})
	require.NoError(t, err)
	_, err = svc.CreateBanner(ctx, Banner{Image: "s3://side.png", Placement: "sidebar", Active: true})
	require.NoError(t, err)

	home, err := svc.ListBanners(ctx, "home", true)
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, "home", home[0].Placement)

	all, err := svc.ListBanners(ctx, "", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
