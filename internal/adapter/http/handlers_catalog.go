package adapthttp

import (
	"net/http"

	"maonav/internal/domain"
)

func (s *Server) handleCategoriesList(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleCategoriesCreate(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if err := parseJSON(r, &c); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.categories.Create(r.Context(), c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCategoriesUpdate(w http.ResponseWriter, r *http.Request) {
	var cs []domain.Category
	if err := parseJSON(r, &cs); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.categories.UpdateMany(r.Context(), cs); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Categories updated"})
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

func (s *Server) handleSitesList(w http.ResponseWriter, r *http.Request) {
	sites, err := s.sites.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

func (s *Server) handleSitesCreate(w http.ResponseWriter, r *http.Request) {
	var site domain.Site
	if err := parseJSON(r, &site); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.sites.Create(r.Context(), site)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSiteUpdate(w http.ResponseWriter, r *http.Request) {
	var site domain.Site
	if err := parseJSON(r, &site); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.sites.Update(r.Context(), r.PathValue("id"), site); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Site updated"})
}

func (s *Server) handleSiteDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sites.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Site deleted"})
}

func (s *Server) handleSettingsList(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := parseJSON(r, &values); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.settings.Update(r.Context(), values); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Settings updated"})
}
