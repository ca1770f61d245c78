package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/logging"
)

const notFoundDetail = "Code block not found"

type messageResponse struct {
	Message string `json:"message"`
}

type deleteResponse struct {
	Message string              `json:"message"`
	Block   codeblock.CodeBlock `json:"block"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type detailResponse struct {
	Detail any `json:"detail"`
}

// fieldError is one entry of a 422 detail list.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "CodeBlocks API is running"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, r, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in codeblock.Input
	if !decodeCreate(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	b, err := s.store.Create(r.Context(), in)
	if err != nil {
		s.internalError(w, r, "create", err)
		return
	}
	s.log.Info().Ctx(logging.WithBlockID(r.Context(), b.ID)).Str("title", b.Title).Msg("code block created")
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var p codeblock.Patch
	if !decodeBody(w, r, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	b, err := s.store.Update(r.Context(), id, p)
	if err != nil {
		s.storeError(w, r, "update", err)
		return
	}
	s.log.Info().Ctx(logging.WithBlockID(r.Context(), id)).Msg("code block updated")
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := s.store.Delete(r.Context(), id)
	if err != nil {
		s.storeError(w, r, "delete", err)
		return
	}
	s.log.Info().Ctx(logging.WithBlockID(r.Context(), id)).Msg("code block deleted")
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Code block deleted", Block: b})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, r, "categories", err)
		return
	}
	cats := codeblock.Categories(blocks)
	if cats == nil {
		cats = []string{}
	}
	slices.Sort(cats)
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: cats})
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, codeblock.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, notFoundDetail)
		return
	}
	s.internalError(w, r, op, err)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error().Ctx(r.Context()).Err(err).Str("op", op).Msg("store operation failed")
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

// pathID parses the {id} segment. Non-integer ids are a validation error,
// matching how the route would reject them for an int path parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeValidation(w, criterio.NewFieldErrors("id", fmt.Errorf("must be an integer, got %q", raw)))
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		writeValidation(w, criterio.NewFieldErrors("body", fmt.Errorf("invalid JSON: %w", err)))
		return false
	}
	return true
}

// createFields must be present in a create body. Empty strings are allowed.
var createFields = []string{"title", "category", "code", "explanation"}

// decodeCreate decodes a create body into in, rejecting bodies that leave
// out any of createFields or send them as null.
func decodeCreate(w http.ResponseWriter, r *http.Request, in *codeblock.Input) bool {
	var raw json.RawMessage
	if !decodeBody(w, r, &raw) {
		return false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		writeValidation(w, criterio.NewFieldErrors("body", fmt.Errorf("must be a JSON object")))
		return false
	}
	var errs criterio.FieldErrorsBuilder
	for _, name := range createFields {
		if v, ok := fields[name]; !ok || string(v) == "null" {
			errs = errs.Append(name, fmt.Errorf("field required"))
		}
	}
	if err := errs.ToError(); err != nil {
		writeValidation(w, err)
		return false
	}

	if err := json.Unmarshal(raw, in); err != nil {
		writeValidation(w, criterio.NewFieldErrors("body", fmt.Errorf("invalid JSON: %w", err)))
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, err error) {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: []fieldError{{Message: err.Error()}}})
		return
	}

	details := make([]fieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fieldError{Field: fe.Field, Message: fe.Err.Error()})
	}
	writeJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: details})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
