// Package serve is the HTTP adapter over the rendering core: public pages
// under /sites/{slug}, previews under /preview/{slug}, and custom-domain
// requests resolved by host. Routing stays thin; everything interesting
// happens in the store, tree, and materializer.
package serve

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/live"
	"github.com/sitesmith/sitesmith/internal/materialize"
	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/publish"
	"github.com/sitesmith/sitesmith/internal/store"
)

// DomainResolver maps a custom domain host to its website. Registration and
// verification of domains are external concerns; the server only needs the
// mapping.
type DomainResolver interface {
	ResolveDomain(ctx context.Context, host string) (*model.Website, error)
}

// Server serves rendered pages over HTTP, plus the builder API when
// services are attached.
type Server struct {
	store   store.Store
	mat     *materialize.Materializer
	domains DomainResolver
	hub     *live.Hub
	svc     *Services
	log     *zap.Logger
}

// New builds a server. domains, hub, and log may be nil.
func New(st store.Store, mat *materialize.Materializer, domains DomainResolver, hub *live.Hub, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: st, mat: mat, domains: domains, hub: hub, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(tracing())
	r.Use(requestMetrics)
	r.Use(middleware.Recoverer)

	// Visitors never see a bare error code; unmatched routes get the same
	// styled page as a missing page would.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeNotFound(w)
	})

	r.Handle("/metrics", promhttp.Handler())

	if s.svc != nil {
		r.Route("/api/v1", s.apiRoutes)
	}

	// Page paths may span multiple segments, so the path part is a wildcard.
	r.Get("/sites/{slug}", s.handlePublic)
	r.Get("/sites/{slug}/*", s.handlePublic)
	r.Get("/preview/{slug}", s.handlePreview)
	r.Get("/preview/{slug}/*", s.handlePreview)

	if s.hub != nil {
		r.Get("/live/{pageID}", s.handleLive)
	}

	// Custom-domain serving: anything not matched above resolves by host.
	r.Get("/", s.handleDomain)
	r.Get("/*", s.handleDomain)

	return r
}

func (s *Server) handlePublic(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	site, err := s.store.WebsiteBySlug(r.Context(), slug)
	if err != nil {
		s.writeNotFound(w)
		return
	}
	s.servePublicPage(w, r, site, chi.URLParam(r, "*"), false)
}

func (s *Server) handleDomain(w http.ResponseWriter, r *http.Request) {
	if s.domains == nil {
		s.writeNotFound(w)
		return
	}
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	site, err := s.domains.ResolveDomain(r.Context(), host)
	if err != nil {
		s.writeNotFound(w)
		return
	}
	s.servePublicPage(w, r, site, chi.URLParam(r, "*"), true)
}

func (s *Server) servePublicPage(w http.ResponseWriter, r *http.Request, site *model.Website, path string, customDomain bool) {
	pages, err := s.store.PagesByWebsite(r.Context(), site.ID)
	if err != nil {
		s.writeNotFound(w)
		return
	}
	if !publish.Servable(site, pages) {
		s.writeNotPublished(w)
		return
	}

	page := resolvePage(pages, path)
	if page == nil {
		s.writeNotFound(w)
		return
	}
	if !page.Published {
		s.writeNotPublished(w)
		return
	}

	components, err := s.store.ComponentsByPage(r.Context(), page.ID)
	if err != nil {
		s.log.Error("load components", zap.String("page_id", page.ID), zap.Error(err))
		s.writeNotFound(w)
		return
	}

	html, err := s.mat.RenderPage(site, page, components, materialize.Options{
		CustomDomain: customDomain,
	})
	if err != nil {
		s.log.Error("render page", zap.String("page_id", page.ID), zap.Error(err))
		s.writeNotFound(w)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	site, err := s.store.WebsiteBySlug(r.Context(), slug)
	if err != nil {
		s.writeNotFound(w)
		return
	}
	pages, err := s.store.PagesByWebsite(r.Context(), site.ID)
	if err != nil {
		s.writeNotFound(w)
		return
	}

	// Preview serves unpublished pages too; it is the owner's editing view.
	page := resolvePage(pages, chi.URLParam(r, "*"))
	if page == nil {
		s.writeNotFound(w)
		return
	}

	components, err := s.store.ComponentsByPage(r.Context(), page.ID)
	if err != nil {
		s.writeNotFound(w)
		return
	}

	html, err := s.mat.RenderPage(site, page, components, materialize.Options{
		Preview:   true,
		SitePages: pages,
	})
	if err != nil {
		s.log.Error("render preview", zap.String("page_id", page.ID), zap.Error(err))
		s.writeNotFound(w)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")
	if _, err := s.store.PageByID(r.Context(), pageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.hub.Subscribe(w, r, pageID)
}

// resolvePage picks the page for a URL path; an empty path means the home
// page. Stored paths may or may not carry a leading slash, so both sides
// are normalized before comparing.
func resolvePage(pages []model.Page, path string) *model.Page {
	if path == "" || path == "/" {
		for i := range pages {
			if pages[i].IsHomePage {
				return &pages[i]
			}
		}
		return nil
	}
	want := model.NormalizePath(path)
	for i := range pages {
		if pages[i].NormalizedPath() == want {
			return &pages[i]
		}
	}
	return nil
}

func (s *Server) writeNotFound(w http.ResponseWriter) {
	writeHTML(w, http.StatusNotFound, s.mat.NotFoundPage())
}

func (s *Server) writeNotPublished(w http.ResponseWriter) {
	writeHTML(w, http.StatusNotFound, s.mat.NotPublishedPage())
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}
