// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/kratos"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/authentication"
)

type SelectGarageRequest struct {
	GarageID string `json:"garage_id" validate:"required,uuid"`
}

type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=200"`
	Role  string `json:"role" validate:"required,oneof=admin staff"`
}

type MembersResponse struct {
	Members []*types.Membership `json:"members"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type API struct {
	service   ServiceInterface
	users     UserCacheInterface
	validator *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Route("/api/v0/garage", func(r chi.Router) {
		r.Get("/", a.currentGarage)
		r.Put("/active", a.selectGarage)
		r.Get("/members", a.listMembers)
		r.Post("/members", a.inviteMember)
		r.Post("/members/{id}/promote", a.promote)
		r.Post("/members/{id}/demote", a.demote)
		r.Delete("/members/{id}", a.remove)
	})
}

func (a *API) currentGarage(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "garage.API.currentGarage")
	defer span.End()

	user, err := a.sessionUser(r.WithContext(ctx))
	if err != nil {
		a.writeError(w, err)
		return
	}

	active, err := a.service.CurrentGarage(ctx, user)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, active)
}

func (a *API) selectGarage(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "garage.API.selectGarage")
	defer span.End()

	var req SelectGarageRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	user, err := a.sessionUser(r.WithContext(ctx))
	if err != nil {
		a.writeError(w, err)
		return
	}

	active, err := a.service.SelectGarage(ctx, user, req.GarageID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, active)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "garage.API.listMembers")
	defer span.End()

	user, err := a.sessionUser(r.WithContext(ctx))
	if err != nil {
		a.writeError(w, err)
		return
	}

	members, err := a.service.ListMembers(ctx, user)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if members == nil {
		members = []*types.Membership{}
	}

	a.writeJSON(w, http.StatusOK, MembersResponse{Members: members})
}

func (a *API) inviteMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "garage.API.inviteMember")
	defer span.End()

	var req InviteMemberRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	user, err := a.sessionUser(r.WithContext(ctx))
	if err != nil {
		a.writeError(w, err)
		return
	}

	invitation, err := a.service.InviteMember(ctx, user, req.Email, req.Name, types.Role(req.Role))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, invitation)
}

func (a *API) promote(w http.ResponseWriter, r *http.Request) {
	a.mutateMember(w, r, "garage.API.promote", a.service.Promote)
}

func (a *API) demote(w http.ResponseWriter, r *http.Request) {
	a.mutateMember(w, r, "garage.API.demote", a.service.Demote)
}

func (a *API) remove(w http.ResponseWriter, r *http.Request) {
	a.mutateMember(w, r, "garage.API.remove", a.service.Remove)
}

type memberMutation func(ctx context.Context, actor *types.User, membershipID string) (*types.Membership, error)

func (a *API) mutateMember(w http.ResponseWriter, r *http.Request, spanName string, fn memberMutation) {
	ctx, span := a.tracer.Start(r.Context(), spanName)
	defer span.End()

	id := chi.URLParam(r, "id")
	if err := a.validator.Var(id, "required,uuid"); err != nil {
		a.writeJSON(w, http.StatusBadRequest, ErrorResponse{Status: http.StatusBadRequest, Message: "invalid membership id"})
		return
	}

	user, err := a.sessionUser(r.WithContext(ctx))
	if err != nil {
		a.writeError(w, err)
		return
	}

	m, err := fn(ctx, user, id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, m)
}

// sessionUser loads the identity the authentication middleware put on the request. When the
// identity has no cached garage, the garage claims of its token stand in for the cache.
func (a *API) sessionUser(r *http.Request) (*types.User, error) {
	principal, ok := authentication.PrincipalFrom(r.Context())
	if !ok {
		return nil, ErrIdentityMissing
	}

	user, err := a.users.GetUser(r.Context(), principal.Subject)
	if errors.Is(err, kratos.ErrIdentityNotFound) {
		return nil, ErrIdentityMissing
	}

	if err != nil {
		return nil, err
	}

	if hint, ok := principal.Hint(); ok && user.Profile.ActiveGarageID == "" {
		user.Profile = hint
	}

	return user, nil
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

func (a *API) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &validationError{msg: "invalid request body"}
	}

	if err := a.validator.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &validationError{msg: "invalid field " + verrs[0].Field() + ": failed on " + verrs[0].Tag()}
		}
		return &validationError{msg: err.Error()}
	}

	return nil
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	var verr *validationError

	status := httpStatus(err)
	if errors.As(err, &verr) {
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		a.logger.Errorf("request failed: %v", err)
		message = "internal server error"
	}

	a.writeJSON(w, status, ErrorResponse{Status: status, Message: message})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func NewAPI(service ServiceInterface, users UserCacheInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.users = users
	a.validator = validator.New(validator.WithRequiredStructEnabled())

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
