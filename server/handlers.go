package server

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/armon/go-metrics"
	"github.com/go-chi/chi/v5"
	"github.com/pressly/imgedit"
)

type createSessionRequest struct {
	Width   float64                `json:"width" validate:"gte=0"`
	Height  float64                `json:"height" validate:"gte=0"`
	Angle   float64                `json:"angle"`
	Options *imgedit.ResizeOptions `json:"options,omitempty"`

	LeftPercent   float64 `json:"left_percent" validate:"gte=0,lte=1"`
	RightPercent  float64 `json:"right_percent" validate:"gte=0,lte=1"`
	TopPercent    float64 `json:"top_percent" validate:"gte=0,lte=1"`
	BottomPercent float64 `json:"bottom_percent" validate:"gte=0,lte=1"`
}

type startResizeRequest struct {
	X string `json:"x" validate:"omitempty,oneof=w e"`
	Y string `json:"y" validate:"omitempty,oneof=s n"`
}

type dragRequest struct {
	DX    float64 `json:"dx"`
	DY    float64 `json:"dy"`
	Shift bool    `json:"shift"`
}

type layoutRequest struct {
	ActualWidth  float64 `json:"actual_width" validate:"gte=0"`
	ActualHeight float64 `json:"actual_height" validate:"gte=0"`
}

type rotateRequest struct {
	Angle float64 `json:"angle"`
}

type sessionResponse struct {
	ID       string                `json:"id"`
	EditInfo imgedit.EditInfo      `json:"edit_info"`
	Options  imgedit.ResizeOptions `json:"options"`
	Handle   *imgedit.Handle       `json:"handle,omitempty"`
	Base     *imgedit.Size         `json:"base,omitempty"`
	Changed  *bool                 `json:"changed,omitempty"`
	Crop     *cropResponse         `json:"crop,omitempty"`
}

type cropResponse struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func newSessionResponse(id string, sess *imgedit.Session) *sessionResponse {
	return &sessionResponse{
		ID:       id,
		EditInfo: sess.EditInfo,
		Options:  sess.Options,
		Handle:   sess.Handle,
		Base:     sess.Base,
	}
}

type handlesResponse struct {
	Kind    string                 `json:"kind"`
	Handles []imgedit.HandleLayout `json:"handles"`
	Markup  template.HTML          `json:"markup"`
}

func Index(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(200)
	w.Write([]byte(`.`))
}

func (srv *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeRequest(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	opts := srv.Config.Resize
	if req.Options != nil {
		opts = *req.Options
	}
	info := imgedit.EditInfo{
		Width:         req.Width,
		Height:        req.Height,
		Angle:         req.Angle,
		LeftPercent:   req.LeftPercent,
		RightPercent:  req.RightPercent,
		TopPercent:    req.TopPercent,
		BottomPercent: req.BottomPercent,
	}

	sess, err := imgedit.NewSession(info, opts)
	if err != nil {
		respond.Error(w, err)
		return
	}
	id, err := srv.Store.Create(r.Context(), sess)
	if err != nil {
		respond.Error(w, err)
		return
	}
	metrics.IncrCounter([]string{"session", "create"}, 1)
	Log.WithField("session", id).Debugf("created session %s", info.Size())

	respond.JSON(w, http.StatusCreated, newSessionResponse(id, sess))
}

// GetSession returns the session. With a natural=WxH query the response
// also carries the visible crop rect of an image of that size.
func (srv *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	natural, err := imgedit.ParseSize(r.URL.Query().Get("natural"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := srv.Store.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	resp := newSessionResponse(id, sess)

	if natural.Width > 0 && natural.Height > 0 {
		rect, err := sess.EditInfo.CropRect(natural)
		if err != nil {
			respond.Error(w, err)
			return
		}
		resp.Crop = &cropResponse{X: rect.Min.X, Y: rect.Min.Y, Width: rect.Dx(), Height: rect.Dy()}
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (srv *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := srv.Store.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}
	metrics.IncrCounter([]string{"session", "delete"}, 1)
	w.WriteHeader(http.StatusNoContent)
}

// updateSession applies fn to the session named in the url and responds
// with the updated session.
func (srv *Server) updateSession(w http.ResponseWriter, r *http.Request, op string, fn func(*imgedit.Session) error) *imgedit.Session {
	defer metrics.MeasureSince([]string{"session", op}, time.Now())

	id := chi.URLParam(r, "id")
	sess, err := srv.Store.Update(r.Context(), id, fn)
	if err != nil {
		respond.Error(w, err)
		return nil
	}
	metrics.IncrCounter([]string{"session", op}, 1)
	return sess
}

func (srv *Server) StartResize(w http.ResponseWriter, r *http.Request) {
	var req startResizeRequest
	if err := decodeRequest(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	h, err := imgedit.ParseHandle(req.X, req.Y)
	if err != nil {
		respond.Error(w, err)
		return
	}

	sess := srv.updateSession(w, r, "resize_start", func(sess *imgedit.Session) error {
		_, err := sess.StartResize(h)
		return err
	})
	if sess == nil {
		return
	}
	respond.JSON(w, http.StatusOK, newSessionResponse(chi.URLParam(r, "id"), sess))
}

func (srv *Server) DragResize(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := decodeRequest(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	var changed bool
	sess := srv.updateSession(w, r, "resize_drag", func(sess *imgedit.Session) (err error) {
		changed, err = sess.Drag(imgedit.Delta{X: req.DX, Y: req.DY}, req.Shift)
		return err
	})
	if sess == nil {
		return
	}
	resp := newSessionResponse(chi.URLParam(r, "id"), sess)
	resp.Changed = &changed
	respond.JSON(w, http.StatusOK, resp)
}

func (srv *Server) EndResize(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeRequest(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	sess := srv.updateSession(w, r, "resize_end", func(sess *imgedit.Session) error {
		return sess.EndResize(req.ActualWidth, req.ActualHeight)
	})
	if sess == nil {
		return
	}
	respond.JSON(w, http.StatusOK, newSessionResponse(chi.URLParam(r, "id"), sess))
}

func (srv *Server) CancelResize(w http.ResponseWriter, r *http.Request) {
	sess := srv.updateSession(w, r, "resize_cancel", func(sess *imgedit.Session) error {
		return sess.CancelResize()
	})
	if sess == nil {
		return
	}
	respond.JSON(w, http.StatusOK, newSessionResponse(chi.URLParam(r, "id"), sess))
}

func (srv *Server) ReportLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeRequest(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	sess := srv.updateSession(w, r, "layout", func(sess *imgedit.Session) error {
		sess.ReportLayout(req.ActualWidth, req.ActualHeight)
		return nil
	})
	if sess == nil {
		return
	}
	respond.JSON(w, http.StatusOK, newSessionResponse(chi.URLParam(r, "id"), sess))
}

func (srv *Server) RotateSession(w http.ResponseWriter, r *http.Request) {
	var req rotateRequest
	if err := decodeRequest(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	sess := srv.updateSession(w, r, "rotate", func(sess *imgedit.Session) error {
		if sess.Resizing() {
			return fmt.Errorf("%w: cannot rotate while resizing", ErrBadRequest)
		}
		sess.Rotate(req.Angle)
		return nil
	})
	if sess == nil {
		return
	}
	respond.JSON(w, http.StatusOK, newSessionResponse(chi.URLParam(r, "id"), sess))
}

// GetHandles returns the layouts and markup of one kind of handles. The
// border colour defaults to the configured one.
func (srv *Server) GetHandles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kindName := q.Get("kind")
	if kindName == "" {
		kindName = imgedit.CornerHandle.String()
	}
	kind, err := imgedit.ParseHandleKind(kindName)
	if err != nil {
		respond.Error(w, fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}

	opts := srv.Config.Handles
	if c := q.Get("border_color"); c != "" {
		opts.BorderColor = c
	}

	markup, err := imgedit.Markup(kind, opts)
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	respond.JSON(w, http.StatusOK, &handlesResponse{
		Kind:    kind.String(),
		Handles: imgedit.HandleLayouts(kind),
		Markup:  markup,
	})
}

func GetMetrics(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, RouteMetrics())
}
