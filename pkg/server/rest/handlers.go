package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/engine"
	"lintang/osmroute/pkg/server"
	"lintang/osmroute/pkg/server/rest/service"
	"lintang/osmroute/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const maxBatchQueries = 100

type NavigationService interface {
	Route(ctx context.Context, q service.RouteQuery, objective engine.Objective, simplify bool) (service.RouteResult, error)
	Batch(ctx context.Context, queries []service.RouteQuery, objective engine.Objective, simplify bool) []service.BatchResult
	NearestNode(ctx context.Context, lat, lon float64) (datastructure.NodeID, datastructure.Coordinate, error)
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	handler := &NavigationHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/fastest-path", handler.fastestPath)
			r.Post("/batch", handler.batch)
			r.Get("/nearest-node", handler.nearestNode)
		})
	})
}

// RouteRequest model info
//
//	@Description	request body for a route query between 2 places in openstreetmap
type RouteRequest struct {
	SrcLat *float64 `json:"src_lat" validate:"required,lte=90,gte=-90"`
	SrcLon *float64 `json:"src_lon" validate:"required,lte=180,gte=-180"`
	DstLat *float64 `json:"dst_lat" validate:"required,lte=90,gte=-90"`
	DstLon *float64 `json:"dst_lon" validate:"required,lte=180,gte=-180"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.SrcLat == nil || s.SrcLon == nil || s.DstLat == nil || s.DstLon == nil {
		return errors.New("src_lat, src_lon, dst_lat and dst_lon are required")
	}
	return nil
}

func (s RouteRequest) toQuery() service.RouteQuery {
	return service.RouteQuery{
		SrcLat: *s.SrcLat,
		SrcLon: *s.SrcLon,
		DstLat: *s.DstLat,
		DstLon: *s.DstLon,
	}
}

// BatchRequest model info
//
//	@Description	request body for many independent route queries answered with the same objective
type BatchRequest struct {
	Queries   []RouteRequest `json:"queries" validate:"required,min=1,max=100,dive"`
	Objective string         `json:"objective" validate:"omitempty,oneof=distance time shortest fastest"`
}

func (s *BatchRequest) Bind(r *http.Request) error {
	if len(s.Queries) == 0 {
		return errors.New("queries must not be empty")
	}
	if len(s.Queries) > maxBatchQueries {
		return fmt.Errorf("at most %d queries per batch", maxBatchQueries)
	}
	for i := range s.Queries {
		if err := s.Queries[i].Bind(r); err != nil {
			return fmt.Errorf("queries[%d]: %w", i, err)
		}
	}
	return nil
}

// NearestNodeRequest model info
//
//	@Description	query parameters for a nearest road network node lookup
type NearestNodeRequest struct {
	Lat float64 `validate:"lte=90,gte=-90"`
	Lon float64 `validate:"lte=180,gte=-180"`
}

// RouteResponse	model info
//
//	@Description	response body for a route query between 2 places in openstreetmap
type RouteResponse struct {
	Path       string                     `json:"path"`
	Coords     []datastructure.Coordinate `json:"coords,omitempty"`
	Distance   float64                    `json:"distance_miles"`
	TravelTime float64                    `json:"travel_time_minutes"`
	Found      bool                       `json:"found"`
	Alg        string                     `json:"algorithm"`
}

func NewRouteResponse(res service.RouteResult, objective engine.Objective) *RouteResponse {
	var alg string
	if objective == engine.FastestTime {
		alg = "Uniform Cost Search"
	} else {
		alg = "A* Algorithm"
	}
	return &RouteResponse{
		Path:       res.Polyline,
		Coords:     res.Coords,
		Distance:   util.RoundFloat(res.DistanceMiles, 3),
		TravelTime: util.RoundFloat(res.TravelTimeMinutes, 2),
		Found:      res.Found,
		Alg:        alg,
	}
}

// BatchRouteResponse	model info
//
//	@Description	one entry of a batch response. Error is set when the query failed
type BatchRouteResponse struct {
	*RouteResponse
	Error string `json:"error,omitempty"`
}

// BatchResponse	model info
//
//	@Description	response body for a batch of route queries, in request order
type BatchResponse struct {
	Results []BatchRouteResponse `json:"results"`
}

// NearestNodeResponse	model info
//
//	@Description	the road network node closest to the requested location
type NearestNodeResponse struct {
	NodeID   int64                    `json:"node_id"`
	Location datastructure.Coordinate `json:"location"`
}

// shortestPath
//
//	@Summary		shortest distance route between 2 places in openstreetmap.
//	@Description	shortest distance route between the road network nodes nearest to source and destination, using A*. simplify=true applies Ramer-Douglas-Peucker to the returned path
//	@Tags			navigations
//	@Param			body		body	RouteRequest	true	"request body route query between 2 places"
//	@Param			simplify	query	bool			false	"simplify the returned path"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	h.route(w, r, engine.ShortestDistance)
}

// fastestPath
//
//	@Summary		fastest route between 2 places in openstreetmap.
//	@Description	minimum travel time route between the road network nodes nearest to source and destination, using edge speed limits
//	@Tags			navigations
//	@Param			body		body	RouteRequest	true	"request body route query between 2 places"
//	@Param			simplify	query	bool			false	"simplify the returned path"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/fastest-path [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) fastestPath(w http.ResponseWriter, r *http.Request) {
	h.route(w, r, engine.FastestTime)
}

func (h *NavigationHandler) route(w http.ResponseWriter, r *http.Request, objective engine.Objective) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !validateRequest(w, r, *data) {
		return
	}

	h.promeMetrics.SPQueryCount.WithLabelValues(objective.String()).Inc()
	res, err := h.svc.Route(r.Context(), data.toQuery(), objective, simplifyParam(r))
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewRouteResponse(res, objective))
}

// batch
//
//	@Summary		many independent route queries in one request.
//	@Description	answers up to 100 route queries concurrently. A query without a route reports an error instead of failing the whole batch
//	@Tags			navigations
//	@Param			body		body	BatchRequest	true	"request body batch route query"
//	@Param			simplify	query	bool			false	"simplify the returned paths"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/batch [post]
//	@Success		200	{object}	BatchResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) batch(w http.ResponseWriter, r *http.Request) {
	data := &BatchRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !validateRequest(w, r, *data) {
		return
	}

	objective, err := engine.ParseObjective(data.Objective)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	queries := make([]service.RouteQuery, len(data.Queries))
	for i, q := range data.Queries {
		queries[i] = q.toQuery()
	}

	h.promeMetrics.SPQueryCount.WithLabelValues(objective.String()).Add(float64(len(queries)))
	results := h.svc.Batch(r.Context(), queries, objective, simplifyParam(r))

	resp := BatchResponse{Results: make([]BatchRouteResponse, len(results))}
	for i, res := range results {
		if res.Err != nil {
			resp.Results[i] = BatchRouteResponse{
				RouteResponse: &RouteResponse{Found: false},
				Error:         res.Err.Error(),
			}
			continue
		}
		resp.Results[i] = BatchRouteResponse{RouteResponse: NewRouteResponse(res.RouteResult, objective)}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// nearestNode
//
//	@Summary		nearest road network node to a location.
//	@Description	great-circle nearest node of the loaded road network. Ties go to the smallest node id
//	@Tags			navigations
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Produce		application/json
//	@Router			/navigations/nearest-node [get]
//	@Success		200	{object}	NearestNodeResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) nearestNode(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid lat: %w", err)))
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid lon: %w", err)))
		return
	}
	data := NearestNodeRequest{Lat: lat, Lon: lon}
	if !validateRequest(w, r, data) {
		return
	}

	id, loc, err := h.svc.NearestNode(r.Context(), data.Lat, data.Lon)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NearestNodeResponse{NodeID: int64(id), Location: loc})
}

func simplifyParam(r *http.Request) bool {
	simplify, _ := strconv.ParseBool(r.URL.Query().Get("simplify"))
	return simplify
}

// validateRequest renders the translated validation errors and returns false when data is invalid.
func validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	case http.StatusUnprocessableEntity:
		statusText = "Unprocessable request."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case server.ErrInternalServerError:
		return http.StatusInternalServerError
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrConflict:
		return http.StatusConflict
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	case server.ErrUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
