package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (api *API) listPosts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := queryBool(r, "refresh")
	if err != nil {
		writeError(w, err)
		return
	}
	if refresh != nil && *refresh {
		api.posts.AllPosts(r.Context(), true)
	}
	page, err := api.posts.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) getPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := api.posts.PostBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	if post == nil {
		writeNotFound(w, "post", slug)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (api *API) renderPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	rendered, err := api.posts.Render(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	if rendered == nil {
		writeNotFound(w, "post", slug)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

func (api *API) relatedPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	related, err := api.posts.Related(r.Context(), chi.URLParam(r, "slug"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, related)
}

func (api *API) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.posts.Categories(r.Context()))
}

func (api *API) categoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	category, err := api.posts.CategoryBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	if category == nil {
		writeNotFound(w, "category", slug)
		return
	}
	list, err := api.posts.PostsByCategory(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) listTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.posts.Tags(r.Context()))
}

func (api *API) tagPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	tag, err := api.posts.TagBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	if tag == nil {
		writeNotFound(w, "tag", slug)
		return
	}
	list, err := api.posts.PostsByTag(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.posts.Stats(r.Context()))
}

func (api *API) archive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.posts.Archive(r.Context()))
}

func (api *API) cacheStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.posts.CacheStatus())
}

func (api *API) clearCache(w http.ResponseWriter, r *http.Request) {
	api.posts.ClearCache()
	api.logger.WithContext(r.Context()).Info("http.cache_cleared")
	w.WriteHeader(http.StatusNoContent)
}
