package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"lintang/gcjwgs/pkg/datastructure"
	"lintang/gcjwgs/pkg/server"
	"lintang/gcjwgs/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const maxBatchSize = 10000

type ConversionService interface {
	Convert(ctx context.Context, lat, lon float64, region string) (service.Conversion, error)
	ConvertBatch(ctx context.Context, coords []datastructure.Coordinate, region string) ([]service.Conversion, error)
	ConvertPolyline(ctx context.Context, encoded string, region string) (service.PolylineConversion, error)
	NormalizeStored(ctx context.Context, stored string, region string) (service.Conversion, error)
}

type CoordinateHandler struct {
	svc          ConversionService
	promeMetrics *Metrics
	validate     *validator.Validate
	trans        ut.Translator
}

func newCoordinateHandler(svc ConversionService, m *Metrics) *CoordinateHandler {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	return &CoordinateHandler{svc: svc, promeMetrics: m, validate: validate, trans: trans}
}

func CoordinateRouter(r *chi.Mux, svc ConversionService, m *Metrics) {
	handler := newCoordinateHandler(svc, m)

	r.Group(func(r chi.Router) {
		r.Route("/api/coordinates", func(r chi.Router) {
			r.Get("/convert", handler.convertQuery)
			r.Post("/convert", handler.convert)
			r.Post("/convert-batch", handler.convertBatch)
			r.Post("/convert-polyline", handler.convertPolyline)
			r.Post("/normalize", handler.normalize)
		})
		r.Get("/api/health", handler.health)
	})
}

// validateStruct returns a renderer for the failed validation, or nil.
func (h *CoordinateHandler) validateStruct(data interface{}) render.Renderer {
	if err := h.validate.Struct(data); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return ErrInvalidRequest(err)
		}
		return ErrValidation(err, translateError(verrs, h.trans))
	}
	return nil
}

// ConvertRequest model info
//
//	@Description	request body untuk konversi satu koordinat gcj-02 ke wgs-84
type ConvertRequest struct {
	Lat     *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon     *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	Country string   `json:"country" validate:"omitempty,max=8"`
}

func (s *ConvertRequest) Bind(r *http.Request) error {
	s.Country = strings.TrimSpace(s.Country)
	return nil
}

// convert
//
//	@Summary		konversi koordinat gcj-02 ke wgs-84.
//	@Description	konversi satu koordinat. Koreksi hanya dipakai kalau country CN dan titiknya ada di dalam bounding box china.
//	@Tags			coordinates
//	@Param			body	body	ConvertRequest	true	"request body konversi koordinat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/coordinates/convert [post]
//	@Success		200	{object}	service.Conversion
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *CoordinateHandler) convert(w http.ResponseWriter, r *http.Request) {
	data := &ConvertRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if rend := h.validateStruct(data); rend != nil {
		render.Render(w, r, rend)
		return
	}

	h.renderConversion(w, r, "convert", *data.Lat, *data.Lon, data.Country)
}

// convertQuery
//
//	@Summary		konversi koordinat gcj-02 ke wgs-84 lewat query string.
//	@Tags			coordinates
//	@Param			lat		query	number	true	"latitude gcj-02"
//	@Param			lon		query	number	true	"longitude gcj-02"
//	@Param			country	query	string	false	"kode negara, default CN"
//	@Produce		application/json
//	@Router			/coordinates/convert [get]
//	@Success		200	{object}	service.Conversion
//	@Failure		400	{object}	ErrResponse
func (h *CoordinateHandler) convertQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := &ConvertRequest{Country: strings.TrimSpace(q.Get("country"))}
	for _, p := range []struct {
		name string
		dst  **float64
	}{{"lat", &data.Lat}, {"lon", &data.Lon}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("%s must be a number", p.name)))
			return
		}
		*p.dst = &v
	}
	if rend := h.validateStruct(data); rend != nil {
		render.Render(w, r, rend)
		return
	}

	h.renderConversion(w, r, "convert", *data.Lat, *data.Lon, data.Country)
}

func (h *CoordinateHandler) renderConversion(w http.ResponseWriter, r *http.Request, endpoint string, lat, lon float64, country string) {
	res, err := h.svc.Convert(r.Context(), lat, lon, country)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.observeConversion(endpoint, res.Converted)
	httplog.LogEntrySetField(r.Context(), "converted", slog.BoolValue(res.Converted))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, res)
}

type CoordinateRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// ConvertBatchRequest model info
//
//	@Description	request body untuk konversi banyak koordinat sekaligus
type ConvertBatchRequest struct {
	Coordinates []CoordinateRequest `json:"coordinates" validate:"required,min=1,max=10000,dive"`
	Country     string              `json:"country" validate:"omitempty,max=8"`
}

func (s *ConvertBatchRequest) Bind(r *http.Request) error {
	if len(s.Coordinates) > maxBatchSize {
		return fmt.Errorf("at most %d coordinates per request", maxBatchSize)
	}
	s.Country = strings.TrimSpace(s.Country)
	return nil
}

type ConvertBatchResponse struct {
	Results   []service.Conversion `json:"results"`
	Converted int                  `json:"converted"`
}

// convertBatch
//
//	@Summary		konversi banyak koordinat gcj-02 ke wgs-84.
//	@Description	urutan hasil sama dengan urutan input. Maksimal 10000 koordinat.
//	@Tags			coordinates
//	@Param			body	body	ConvertBatchRequest	true	"request body konversi banyak koordinat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/coordinates/convert-batch [post]
//	@Success		200	{object}	ConvertBatchResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *CoordinateHandler) convertBatch(w http.ResponseWriter, r *http.Request) {
	data := &ConvertBatchRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if rend := h.validateStruct(data); rend != nil {
		render.Render(w, r, rend)
		return
	}

	coords := make([]datastructure.Coordinate, len(data.Coordinates))
	for i, c := range data.Coordinates {
		coords[i] = datastructure.NewCoordinate(*c.Lat, *c.Lon)
	}

	results, err := h.svc.ConvertBatch(r.Context(), coords, data.Country)
	if err != nil {
		httplog.LogEntry(r.Context()).Warn("batch conversion failed", "err", err, "size", len(coords))
		render.Render(w, r, ErrChi(err))
		return
	}

	resp := &ConvertBatchResponse{Results: results}
	for _, res := range results {
		h.promeMetrics.observeConversion("convert-batch", res.Converted)
		if res.Converted {
			resp.Converted++
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// ConvertPolylineRequest model info
//
//	@Description	request body untuk konversi encoded polyline (precision 5, urutan lat,lon)
type ConvertPolylineRequest struct {
	Polyline string `json:"polyline" validate:"required"`
	Country  string `json:"country" validate:"omitempty,max=8"`
}

func (s *ConvertPolylineRequest) Bind(r *http.Request) error {
	s.Country = strings.TrimSpace(s.Country)
	return nil
}

// convertPolyline
//
//	@Summary		konversi semua titik encoded polyline gcj-02 ke wgs-84.
//	@Tags			coordinates
//	@Param			body	body	ConvertPolylineRequest	true	"request body konversi polyline"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/coordinates/convert-polyline [post]
//	@Success		200	{object}	service.PolylineConversion
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *CoordinateHandler) convertPolyline(w http.ResponseWriter, r *http.Request) {
	data := &ConvertPolylineRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if rend := h.validateStruct(data); rend != nil {
		render.Render(w, r, rend)
		return
	}

	res, err := h.svc.ConvertPolyline(r.Context(), data.Polyline, data.Country)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.observeConversions("convert-polyline", res.Converted, len(res.Coordinates))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, res)
}

// NormalizeRequest model info
//
//	@Description	request body untuk normalisasi koordinat tersimpan dengan format "<lat>,<lon>"
type NormalizeRequest struct {
	Coordinate string `json:"coordinate" validate:"required"`
	Country    string `json:"country" validate:"omitempty,max=8"`
}

func (s *NormalizeRequest) Bind(r *http.Request) error {
	s.Country = strings.TrimSpace(s.Country)
	return nil
}

// normalize
//
//	@Summary		normalisasi koordinat tersimpan "<lat>,<lon>" ke wgs-84.
//	@Tags			coordinates
//	@Param			body	body	NormalizeRequest	true	"request body normalisasi koordinat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/coordinates/normalize [post]
//	@Success		200	{object}	service.Conversion
//	@Failure		400	{object}	ErrResponse
func (h *CoordinateHandler) normalize(w http.ResponseWriter, r *http.Request) {
	data := &NormalizeRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if rend := h.validateStruct(data); rend != nil {
		render.Render(w, r, rend)
		return
	}

	res, err := h.svc.NormalizeStored(r.Context(), data.Coordinate, data.Country)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.observeConversion("normalize", res.Converted)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, res)
}

func (h *CoordinateHandler) health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, "ok")
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

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	code := getStatusCode(err)
	statusText := ""
	switch code {
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusBadRequest:
		statusText = "Bad request."
	case http.StatusRequestTimeout:
		statusText = "Request canceled."
	default:
		statusText = "Error."
	}

	errText := err.Error()
	if code == http.StatusInternalServerError {
		errText = server.ErrInternalServerError.Error()
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     statusText,
		ErrorText:      errText,
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch server.CodeOf(err) {
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	case server.ErrCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func translateError(verrs validator.ValidationErrors, trans ut.Translator) (errs []error) {
	for _, e := range verrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
