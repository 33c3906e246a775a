package serve

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/editor"
	"github.com/sitesmith/sitesmith/internal/fork"
	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/publish"
	"github.com/sitesmith/sitesmith/internal/store"
)

// Services bundles the mutation services behind the JSON API. Attaching them
// enables the /api/v1 routes; the public serving routes work without them.
type Services struct {
	Editor  *editor.Service
	Fork    *fork.Engine
	Publish *publish.Service
}

// AttachServices enables the builder API on the next Router call.
func (s *Server) AttachServices(svc Services) {
	s.svc = &svc
}

// actorID identifies the acting user. Authentication itself is the fronting
// proxy's job; an empty value makes every mutation fail with 401.
func actorID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func (s *Server) apiRoutes(r chi.Router) {
	// API clients get JSON errors, not the styled HTML pages visitors see.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeErrorStatus(w, http.StatusNotFound, "not found")
	})

	r.Post("/websites", s.apiCreateWebsite)
	r.Get("/websites/{websiteID}", s.apiGetWebsite)
	r.Patch("/websites/{websiteID}", s.apiUpdateWebsite)
	r.Delete("/websites/{websiteID}", s.apiDeleteWebsite)
	r.Post("/websites/{websiteID}/publish", s.apiPublishWebsite)
	r.Post("/websites/{websiteID}/unpublish", s.apiUnpublishWebsite)
	r.Post("/websites/{websiteID}/template", s.apiShareTemplate)
	r.Post("/websites/{websiteID}/fork", s.apiForkWebsite)

	r.Get("/websites/{websiteID}/pages", s.apiListPages)
	r.Post("/websites/{websiteID}/pages", s.apiCreatePage)
	r.Get("/pages/{pageID}", s.apiGetPage)
	r.Patch("/pages/{pageID}", s.apiUpdatePage)
	r.Delete("/pages/{pageID}", s.apiDeletePage)
	r.Post("/pages/{pageID}/publish", s.apiPublishPage)
	r.Post("/pages/{pageID}/unpublish", s.apiUnpublishPage)

	r.Get("/pages/{pageID}/components", s.apiListComponents)
	r.Post("/pages/{pageID}/components", s.apiCreateComponent)
	r.Patch("/components/{componentID}", s.apiUpdateComponent)
	r.Post("/components/{componentID}/move", s.apiMoveComponent)
	r.Delete("/components/{componentID}", s.apiDeleteComponent)
}

type websiteJSON struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Published  bool      `json:"published"`
	IsTemplate bool      `json:"isTemplate"`
	ForkCount  int       `json:"forkCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type seoJSON struct {
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	Keywords           string `json:"keywords,omitempty"`
	Canonical          string `json:"canonical,omitempty"`
	OGTitle            string `json:"ogTitle,omitempty"`
	OGDescription      string `json:"ogDescription,omitempty"`
	OGImage            string `json:"ogImage,omitempty"`
	TwitterCard        string `json:"twitterCard,omitempty"`
	TwitterTitle       string `json:"twitterTitle,omitempty"`
	TwitterDescription string `json:"twitterDescription,omitempty"`
	TwitterImage       string `json:"twitterImage,omitempty"`
}

type pageJSON struct {
	ID         string    `json:"id"`
	WebsiteID  string    `json:"websiteId"`
	Title      string    `json:"title"`
	Path       string    `json:"path"`
	IsHomePage bool      `json:"isHomePage"`
	Published  bool      `json:"published"`
	SEO        seoJSON   `json:"seo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type componentJSON struct {
	ID            string         `json:"id"`
	PageID        string         `json:"pageId"`
	Type          string         `json:"type"`
	ParentID      *string        `json:"parentId"`
	Position      int            `json:"position"`
	Properties    map[string]any `json:"properties,omitempty"`
	RawProperties string         `json:"rawProperties,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func toWebsiteJSON(w *model.Website) websiteJSON {
	return websiteJSON{
		ID: w.ID, OwnerID: w.OwnerID, Name: w.Name, Slug: w.Slug,
		Published: w.Published, IsTemplate: w.IsTemplate, ForkCount: w.ForkCount,
		CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt,
	}
}

func toPageJSON(p *model.Page) pageJSON {
	return pageJSON{
		ID: p.ID, WebsiteID: p.WebsiteID, Title: p.Title, Path: p.Path,
		IsHomePage: p.IsHomePage, Published: p.Published,
		SEO:       seoJSON(p.SEO),
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toComponentJSON(c *model.Component) componentJSON {
	return componentJSON{
		ID: c.ID, PageID: c.PageID, Type: c.Type, ParentID: c.ParentID,
		Position: c.Position, Properties: c.Properties, RawProperties: c.RawProperties,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (s *Server) apiCreateWebsite(w http.ResponseWriter, r *http.Request) {
	actor := actorID(r)
	if actor == "" {
		s.writeError(w, publish.ErrUnauthorized)
		return
	}
	var in struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	if in.Name == "" {
		s.writeErrorStatus(w, http.StatusBadRequest, "name is required")
		return
	}
	if in.Slug == "" {
		in.Slug = fork.Slugify(in.Name)
	}
	now := time.Now().UTC()
	site := &model.Website{
		ID: uuid.New().String(), OwnerID: actor, Name: in.Name, Slug: in.Slug,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := s.store.CreateWebsite(r.Context(), site); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toWebsiteJSON(site))
}

func (s *Server) apiGetWebsite(w http.ResponseWriter, r *http.Request) {
	site, err := s.store.WebsiteByID(r.Context(), chi.URLParam(r, "websiteID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toWebsiteJSON(site))
}

func (s *Server) apiUpdateWebsite(w http.ResponseWriter, r *http.Request) {
	if actorID(r) == "" {
		s.writeError(w, publish.ErrUnauthorized)
		return
	}
	var in struct {
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	site, err := s.store.WebsiteByID(r.Context(), chi.URLParam(r, "websiteID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if in.Name != nil {
		site.Name = *in.Name
	}
	if in.Slug != nil {
		site.Slug = *in.Slug
	}
	site.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateWebsite(r.Context(), site); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toWebsiteJSON(site))
}

func (s *Server) apiDeleteWebsite(w http.ResponseWriter, r *http.Request) {
	if actorID(r) == "" {
		s.writeError(w, publish.ErrUnauthorized)
		return
	}
	if err := s.store.DeleteWebsite(r.Context(), chi.URLParam(r, "websiteID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiPublishWebsite(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Publish.PublishWebsite(r.Context(), actorID(r), chi.URLParam(r, "websiteID"))
	s.finishMutation(w, err)
}

func (s *Server) apiUnpublishWebsite(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Publish.UnpublishWebsite(r.Context(), actorID(r), chi.URLParam(r, "websiteID"))
	s.finishMutation(w, err)
}

func (s *Server) apiShareTemplate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Share bool `json:"share"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	err := s.svc.Publish.ShareAsTemplate(r.Context(), actorID(r), chi.URLParam(r, "websiteID"), in.Share)
	s.finishMutation(w, err)
}

func (s *Server) apiForkWebsite(w http.ResponseWriter, r *http.Request) {
	site, err := s.svc.Fork.Fork(r.Context(), chi.URLParam(r, "websiteID"), actorID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toWebsiteJSON(site))
}

func (s *Server) apiListPages(w http.ResponseWriter, r *http.Request) {
	websiteID := chi.URLParam(r, "websiteID")
	if _, err := s.store.WebsiteByID(r.Context(), websiteID); err != nil {
		s.writeError(w, err)
		return
	}
	pages, err := s.store.PagesByWebsite(r.Context(), websiteID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]pageJSON, 0, len(pages))
	for i := range pages {
		out = append(out, toPageJSON(&pages[i]))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) apiCreatePage(w http.ResponseWriter, r *http.Request) {
	if actorID(r) == "" {
		s.writeError(w, publish.ErrUnauthorized)
		return
	}
	var in struct {
		Title      string  `json:"title"`
		Path       string  `json:"path"`
		IsHomePage bool    `json:"isHomePage"`
		SEO        seoJSON `json:"seo"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	websiteID := chi.URLParam(r, "websiteID")
	if _, err := s.store.WebsiteByID(r.Context(), websiteID); err != nil {
		s.writeError(w, err)
		return
	}
	now := time.Now().UTC()
	page := &model.Page{
		ID: uuid.New().String(), WebsiteID: websiteID,
		Title: in.Title, Path: in.Path, IsHomePage: in.IsHomePage,
		SEO:       model.SEO(in.SEO),
		CreatedAt: now, UpdatedAt: now,
	}
	if err := s.store.CreatePage(r.Context(), page); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toPageJSON(page))
}

func (s *Server) apiGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.PageByID(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPageJSON(page))
}

func (s *Server) apiUpdatePage(w http.ResponseWriter, r *http.Request) {
	if actorID(r) == "" {
		s.writeError(w, publish.ErrUnauthorized)
		return
	}
	var in struct {
		Title *string  `json:"title"`
		Path  *string  `json:"path"`
		SEO   *seoJSON `json:"seo"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	page, err := s.store.PageByID(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Path != nil {
		page.Path = *in.Path
	}
	if in.SEO != nil {
		page.SEO = model.SEO(*in.SEO)
	}
	page.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdatePage(r.Context(), page); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPageJSON(page))
}

func (s *Server) apiDeletePage(w http.ResponseWriter, r *http.Request) {
	if actorID(r) == "" {
		s.writeError(w, publish.ErrUnauthorized)
		return
	}
	if err := s.store.DeletePage(r.Context(), chi.URLParam(r, "pageID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiPublishPage(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Publish.PublishPage(r.Context(), actorID(r), chi.URLParam(r, "pageID"))
	s.finishMutation(w, err)
}

func (s *Server) apiUnpublishPage(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Publish.UnpublishPage(r.Context(), actorID(r), chi.URLParam(r, "pageID"))
	s.finishMutation(w, err)
}

func (s *Server) apiListComponents(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	if _, err := s.store.PageByID(r.Context(), pageID); err != nil {
		s.writeError(w, err)
		return
	}
	components, err := s.store.ComponentsByPage(r.Context(), pageID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]componentJSON, 0, len(components))
	for i := range components {
		out = append(out, toComponentJSON(&components[i]))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) apiCreateComponent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Type       string         `json:"type"`
		ParentID   *string        `json:"parentId"`
		Position   *int           `json:"position"`
		Properties map[string]any `json:"properties"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	c, err := s.svc.Editor.Create(r.Context(), actorID(r), editor.CreateInput{
		PageID:     chi.URLParam(r, "pageID"),
		Type:       in.Type,
		ParentID:   in.ParentID,
		Position:   in.Position,
		Properties: in.Properties,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toComponentJSON(c))
}

func (s *Server) apiUpdateComponent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Properties map[string]any `json:"properties"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	c, err := s.svc.Editor.UpdateProperties(r.Context(), actorID(r), chi.URLParam(r, "componentID"), in.Properties)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toComponentJSON(c))
}

func (s *Server) apiMoveComponent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ParentID *string `json:"parentId"`
		Position int     `json:"position"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	c, err := s.svc.Editor.Move(r.Context(), actorID(r), chi.URLParam(r, "componentID"), in.ParentID, in.Position)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toComponentJSON(c))
}

func (s *Server) apiDeleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Editor.Delete(r.Context(), actorID(r), chi.URLParam(r, "componentID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) finishMutation(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps service errors onto HTTP statuses. Plan limit violations
// carry their usage details so clients can render an upgrade prompt.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var limitErr *publish.LimitError
	switch {
	case errors.As(err, &limitErr):
		s.writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"error":        limitErr.Error(),
			"currentUsage": limitErr.CurrentUsage,
			"limit":        limitErr.Limit,
			"plan":         limitErr.Plan,
		})
	case errors.Is(err, editor.ErrUnauthorized),
		errors.Is(err, publish.ErrUnauthorized),
		errors.Is(err, fork.ErrUnauthorized):
		s.writeErrorStatus(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, store.ErrNotFound):
		s.writeErrorStatus(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrSlugTaken):
		s.writeErrorStatus(w, http.StatusConflict, "slug already taken")
	case errors.Is(err, fork.ErrNotTemplate), errors.Is(err, fork.ErrNoPages):
		s.writeErrorStatus(w, http.StatusConflict, err.Error())
	case errors.Is(err, editor.ErrValidation):
		s.writeErrorStatus(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", zap.Error(err))
		s.writeErrorStatus(w, http.StatusInternalServerError, "internal error")
	}
}
