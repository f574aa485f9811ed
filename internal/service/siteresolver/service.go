package siteresolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/geo"
	"github.com/jackc/pgx/v5"
)

type SiteResolverImpl struct {
	site.SiteRepository
	settings.SettingsRepository
}

func NewSiteResolver(siteRepo site.SiteRepository, settingsRepo settings.SettingsRepository) site.SiteResolver {
	return &SiteResolverImpl{
		SiteRepository:     siteRepo,
		SettingsRepository: settingsRepo,
	}
}

// Resolve implements site.SiteResolver.
func (s *SiteResolverImpl) Resolve(ctx context.Context, explicitSiteID string, position geo.Coordinates) (site.Resolution, error) {
	// Explicit selection always wins, regardless of distance.
	if explicitSiteID != "" {
		st, err := s.SiteRepository.GetByID(ctx, explicitSiteID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, site.ErrSiteNotFound) {
				return site.Resolution{}, site.ErrSiteNotFound
			}
			return site.Resolution{}, fmt.Errorf("failed to get site by id: %w", err)
		}
		return site.Resolution{Site: st, Source: site.SourceParam}, nil
	}

	cfg, err := s.SettingsRepository.GetShiftSettings(ctx)
	if err != nil {
		return site.Resolution{}, fmt.Errorf("failed to get shift settings: %w", err)
	}

	// Radius at or below zero is a deliberate configuration escape hatch,
	// distinct from "no site in range".
	if !cfg.NearestSearchEnabled() {
		return site.Resolution{}, site.ErrNearestDisabled
	}

	sites, err := s.SiteRepository.List(ctx)
	if err != nil {
		return site.Resolution{}, fmt.Errorf("failed to list sites: %w", err)
	}

	return nearestWithinRadius(sites, position, float64(cfg.GeofenceRadiusMeters))
}

// nearestWithinRadius keeps the minimum-distance site inside the radius.
// Ties keep the first minimum in input order so resolution is deterministic.
func nearestWithinRadius(sites []site.Site, position geo.Coordinates, radiusMeters float64) (site.Resolution, error) {
	var best *site.Site
	var bestDistance float64

	for i := range sites {
		d := geo.HaversineMeters(position, sites[i].Coordinates())
		if d > radiusMeters {
			continue
		}
		if best == nil || d < bestDistance {
			best = &sites[i]
			bestDistance = d
		}
	}

	if best == nil {
		return site.Resolution{}, site.ErrNoSiteInRange
	}

	return site.Resolution{
		Site:           *best,
		Source:         site.SourceNearest,
		DistanceMeters: bestDistance,
	}, nil
}
