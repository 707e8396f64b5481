package handlers

import (
	"github.com/ersonp/lineage/internal/domain/entities"
	"github.com/ersonp/lineage/internal/domain/ports"
	"github.com/ersonp/lineage/internal/domain/services"
	"github.com/ersonp/lineage/internal/infrastructure/config"
	"github.com/ersonp/lineage/internal/infrastructure/render"
)

// TreeSettings holds the drawing parameters of a tree view.
type TreeSettings struct {
	ViewportWidth float64
	NarrowWidth   float64
	Geometry      render.Geometry
	ShowNotes     bool
}

// TreeSettingsFromConfig converts the render section of the config.
func TreeSettingsFromConfig(cfg config.RenderConfig) TreeSettings {
	g := render.DefaultGeometry()
	if cfg.CardWidth > 0 {
		g.CardWidth = cfg.CardWidth
	}
	if cfg.CardHeight > 0 {
		g.CardHeight = cfg.CardHeight
	}
	if cfg.ColumnGap > 0 {
		g.ColumnGap = cfg.ColumnGap
	}
	if cfg.RowGap > 0 {
		g.RowGap = cfg.RowGap
	}
	if cfg.Margin > 0 {
		g.Margin = cfg.Margin
	}
	return TreeSettings{
		ViewportWidth: cfg.ViewportWidth,
		NarrowWidth:   cfg.NarrowWidth,
		Geometry:      g,
		ShowNotes:     cfg.ShowNotes,
	}
}

// TreeHandler builds the visible tree: filter or focus, plan, place and
// route.
type TreeHandler struct {
	family   *services.FamilyService
	router   *services.Router
	settings TreeSettings
}

// NewTreeHandler creates a new TreeHandler.
func NewTreeHandler(family *services.FamilyService, settings TreeSettings) *TreeHandler {
	if settings.ViewportWidth <= 0 {
		settings.ViewportWidth = 1280
	}
	return &TreeHandler{
		family:   family,
		router:   services.NewRouter(settings.NarrowWidth),
		settings: settings,
	}
}

// TreeOptions selects what part of the tree is shown.
type TreeOptions struct {
	Filter services.FilterSpec
	// Focus is a member id or name. When set, Filter is ignored and only
	// the member and its direct relatives are shown.
	Focus string
	// ViewportWidth overrides the configured width when positive.
	ViewportWidth float64
	HideNotes     bool
}

// TreeResult is a planned and routed tree view.
type TreeResult struct {
	Focus  *entities.Member
	View   services.View
	Layout services.Layout
	Scene  *ports.Scene
}

// HandleTree computes the view for opts.
func (h *TreeHandler) HandleTree(opts TreeOptions) (*TreeResult, error) {
	members := h.family.Members()
	rels := h.family.Relationships()
	result := &TreeResult{}

	if opts.Focus != "" {
		m, err := resolveMember(h.family, opts.Focus)
		if err != nil {
			return nil, err
		}
		view, err := services.FocusSet(members, rels, m.ID)
		if err != nil {
			return nil, err
		}
		result.Focus = &m
		result.View = view
	} else {
		result.View = services.VisibleSet(members, rels, opts.Filter)
	}

	viewport := h.settings.ViewportWidth
	if opts.ViewportWidth > 0 {
		viewport = opts.ViewportWidth
	}

	result.Layout = services.Plan(result.View.Members)
	geometry := h.settings.Geometry
	geometry.Narrow = h.router.IsNarrow(viewport)
	arrangement := render.Arrange(result.Layout, geometry)

	result.Scene = &ports.Scene{
		Width:       arrangement.Width,
		Height:      arrangement.Height,
		Members:     result.View.Members,
		Boxes:       arrangement.Boxes,
		Connections: h.router.RouteAll(result.View.Relationships, arrangement.Boxes, viewport),
		ShowNotes:   h.settings.ShowNotes && !opts.HideNotes,
	}
	return result, nil
}
