package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/imgedit"
	"github.com/unrolled/render"
)

var (
	ErrBadRequest = errors.New("bad request")

	validate = validator.New()
)

type Responder struct {
	*render.Render
}

func NewResponder() *Responder {
	return &Responder{render.New(render.Options{})}
}

func (r *Responder) ApiError(w http.ResponseWriter, status int, err error) {
	if err == nil {
		r.JSON(w, status, map[string]interface{}{})
		return
	}
	r.JSON(w, status, map[string]interface{}{"error": err.Error()})
}

// Error responds with the status matching err.
func (r *Responder) Error(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status >= 500 {
		Log.WithError(err).Error("request failed")
	}
	r.ApiError(w, status, err)
}

func errorStatus(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, imgedit.ErrNoActiveDrag), errors.Is(err, ErrDBConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, imgedit.ErrInvalidHandle),
		errors.Is(err, imgedit.ErrNotDraggable),
		errors.Is(err, imgedit.ErrInvalidOptions),
		errors.Is(err, imgedit.ErrInvalidBorderColor),
		errors.Is(err, imgedit.ErrInvalidSize),
		errors.Is(err, imgedit.ErrInvalidCrop),
		errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeRequest reads the json body of r into v and validates it.
func decodeRequest(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s", ErrBadRequest, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrBadRequest, err)
	}
	return nil
}
