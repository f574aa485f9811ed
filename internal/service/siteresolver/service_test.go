package siteresolver

import (
	"context"
	"testing"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSiteRepo struct {
	sites []site.Site
}

func (f *fakeSiteRepo) List(ctx context.Context) ([]site.Site, error) {
	return f.sites, nil
}

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string) (site.Site, error) {
	for _, s := range f.sites {
		if s.ID == id {
			return s, nil
		}
	}
	return site.Site{}, site.ErrSiteNotFound
}

type fakeSettingsRepo struct {
	cfg settings.ShiftSettings
}

func (f *fakeSettingsRepo) GetShiftSettings(ctx context.Context) (settings.ShiftSettings, error) {
	return f.cfg, nil
}

// Guard position for the tests; site A sits on it, site B ~55m north.
var (
	myPosition = geo.Coordinates{Latitude: 1.30000, Longitude: 103.80000}
	siteA      = site.Site{ID: "site-a", Name: "Alpha Tower", Latitude: 1.30000, Longitude: 103.80000}
	siteB      = site.Site{ID: "site-b", Name: "Bravo Plaza", Latitude: 1.30050, Longitude: 103.80000}
)

func newResolver(radius int, sites ...site.Site) site.SiteResolver {
	return NewSiteResolver(
		&fakeSiteRepo{sites: sites},
		&fakeSettingsRepo{cfg: settings.ShiftSettings{GeofenceRadiusMeters: radius}},
	)
}

func TestResolve_NearestSiteWins(t *testing.T) {
	r := newResolver(100, siteA, siteB)

	res, err := r.Resolve(context.Background(), "", myPosition)
	require.NoError(t, err)
	assert.Equal(t, "site-a", res.Site.ID)
	assert.Equal(t, site.SourceNearest, res.Source)
	assert.Less(t, res.DistanceMeters, 1.0)
}

func TestResolve_NearestIsDeterministicOnInputOrder(t *testing.T) {
	// Two sites at the identical position: the first in input order wins.
	twinA := siteA
	twinA.ID = "twin-a"
	twinB := siteA
	twinB.ID = "twin-b"

	r := newResolver(100, twinA, twinB)
	res, err := r.Resolve(context.Background(), "", myPosition)
	require.NoError(t, err)
	assert.Equal(t, "twin-a", res.Site.ID)
}

func TestResolve_NoSiteInRange(t *testing.T) {
	// B is ~55m away; a 40m radius leaves nothing in range.
	r := newResolver(40, siteB)

	_, err := r.Resolve(context.Background(), "", myPosition)
	assert.ErrorIs(t, err, site.ErrNoSiteInRange)
}

func TestResolve_ExplicitSitePrecedence(t *testing.T) {
	// A is closer, but the caller asked for B.
	r := newResolver(100, siteA, siteB)

	res, err := r.Resolve(context.Background(), "site-b", myPosition)
	require.NoError(t, err)
	assert.Equal(t, "site-b", res.Site.ID)
	assert.Equal(t, site.SourceParam, res.Source)
}

func TestResolve_ExplicitSiteIgnoresRadius(t *testing.T) {
	// Explicit selection works even when nearest search is disabled and the
	// site is out of range.
	r := newResolver(0, siteB)

	res, err := r.Resolve(context.Background(), "site-b", myPosition)
	require.NoError(t, err)
	assert.Equal(t, site.SourceParam, res.Source)
}

func TestResolve_ExplicitSiteNotFound(t *testing.T) {
	r := newResolver(100, siteA)

	_, err := r.Resolve(context.Background(), "site-zzz", myPosition)
	assert.ErrorIs(t, err, site.ErrSiteNotFound)
}

func TestResolve_ZeroRadiusDisablesNearestSearch(t *testing.T) {
	// Even a site at distance zero must not match: radius<=0 is the
	// explicit off switch, not a tight geofence.
	r := newResolver(0, siteA)

	_, err := r.Resolve(context.Background(), "", myPosition)
	assert.ErrorIs(t, err, site.ErrNearestDisabled)
	assert.NotErrorIs(t, err, site.ErrNoSiteInRange)
}
