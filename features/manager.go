package features

import (
	"sort"

	"github.com/bytearena/ecs"
)

// Manager owns the vector feature entities. Rivers and regions are stored as
// ECS entities carrying one component each; render and hit-test code queries
// them through the tags. The manager is not safe for concurrent use; all
// mutation happens on the main thread between renders.
type Manager struct {
	World *ecs.Manager

	RiverComponent  *ecs.Component
	RegionComponent *ecs.Component

	RiverTag  ecs.Tag
	RegionTag ecs.Tag

	nextRiverID  int
	nextRegionID int

	// settings persisted with the datasets
	RiverSettings  RiverSettings
	RegionSettings RegionSettings
}

// RiverSettings travels with the rivers dataset.
type RiverSettings struct {
	LabelMode       string `json:"labelMode"`
	SnapToEndpoints bool   `json:"snapToEndpoints"`
}

// RegionSettings travels with the regions dataset.
type RegionSettings struct {
	LabelMode        string `json:"labelMode"`
	RenderMode       string `json:"renderMode"`
	SmoothIterations int    `json:"smoothIterations"`
}

// NewManager creates an empty feature store.
func NewManager() *Manager {
	world := ecs.NewManager()
	riverComp := world.NewComponent()
	regionComp := world.NewComponent()
	return &Manager{
		World:           world,
		RiverComponent:  riverComp,
		RegionComponent: regionComp,
		RiverTag:        ecs.BuildTag(riverComp),
		RegionTag:       ecs.BuildTag(regionComp),
		nextRiverID:     1,
		nextRegionID:    1,
		RiverSettings:   RiverSettings{LabelMode: "hover"},
		RegionSettings:  RegionSettings{LabelMode: "always", RenderMode: "smooth", SmoothIterations: 2},
	}
}

// AddRiver validates and stores a river. A zero ID is assigned the next free
// one.
func (m *Manager) AddRiver(r River) (*River, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.ID == 0 {
		r.ID = m.nextRiverID
	}
	if r.ID >= m.nextRiverID {
		m.nextRiverID = r.ID + 1
	}
	stored := r
	entity := m.World.NewEntity()
	entity.AddComponent(m.RiverComponent, &stored)
	return &stored, nil
}

// AddRegion validates and stores a region.
func (m *Manager) AddRegion(rg Region) (*Region, error) {
	if err := rg.Validate(); err != nil {
		return nil, err
	}
	if rg.ID == 0 {
		rg.ID = m.nextRegionID
	}
	if rg.ID >= m.nextRegionID {
		m.nextRegionID = rg.ID + 1
	}
	stored := rg
	entity := m.World.NewEntity()
	entity.AddComponent(m.RegionComponent, &stored)
	return &stored, nil
}

// Rivers returns all rivers sorted by id.
func (m *Manager) Rivers() []*River {
	var out []*River
	for _, result := range m.World.Query(m.RiverTag) {
		out = append(out, result.Components[m.RiverComponent].(*River))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Regions returns all regions sorted by id.
func (m *Manager) Regions() []*Region {
	var out []*Region
	for _, result := range m.World.Query(m.RegionTag) {
		out = append(out, result.Components[m.RegionComponent].(*Region))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RemoveRiver deletes the river with the given id, reporting whether it
// existed.
func (m *Manager) RemoveRiver(id int) bool {
	for _, result := range m.World.Query(m.RiverTag) {
		if result.Components[m.RiverComponent].(*River).ID == id {
			m.World.DisposeEntity(result.Entity)
			return true
		}
	}
	return false
}

// RemoveRegion deletes the region with the given id.
func (m *Manager) RemoveRegion(id int) bool {
	for _, result := range m.World.Query(m.RegionTag) {
		if result.Components[m.RegionComponent].(*Region).ID == id {
			m.World.DisposeEntity(result.Entity)
			return true
		}
	}
	return false
}

// Clear drops every feature, used by atomic dataset reloads.
func (m *Manager) Clear() {
	for _, result := range m.World.Query(m.RiverTag) {
		m.World.DisposeEntity(result.Entity)
	}
	for _, result := range m.World.Query(m.RegionTag) {
		m.World.DisposeEntity(result.Entity)
	}
	m.nextRiverID = 1
	m.nextRegionID = 1
}

// FindRegionAt resolves the region under a point. Inside hits win; among all
// polygons containing the point the one with the smallest minimum edge
// distance is picked, which favors the tightest of nested regions. With no
// inside hit the nearest outline within the stroke-derived threshold wins.
func (m *Manager) FindRegionAt(x, y float64) *Region {
	var best *Region
	bestEdge := 0.0
	for _, rg := range m.Regions() {
		if !rg.Contains(x, y) {
			continue
		}
		edge := rg.EdgeDistance(x, y)
		if best == nil || edge < bestEdge {
			best, bestEdge = rg, edge
		}
	}
	if best != nil {
		return best
	}

	for _, rg := range m.Regions() {
		edge := rg.EdgeDistance(x, y)
		if edge > rg.StrokeHitThreshold() {
			continue
		}
		if best == nil || edge < bestEdge {
			best, bestEdge = rg, edge
		}
	}
	return best
}

// FindRiverAt resolves the river whose centerline is nearest to the point
// within its width threshold.
func (m *Manager) FindRiverAt(x, y float64) (*River, RiverHit) {
	var best *River
	var bestHit RiverHit
	for _, r := range m.Rivers() {
		hit, ok := r.HitTest(x, y)
		if !ok {
			continue
		}
		if best == nil || hit.Dist < bestHit.Dist {
			best, bestHit = r, hit
		}
	}
	return best, bestHit
}
