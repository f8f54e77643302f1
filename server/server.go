// Package server exposes the desk actions over HTTP with gin. Each request is one action;
// the response carries the dialogs and rows the action produced.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/form"
	"github.com/kcmvp/orderdesk/sqlx"
	"github.com/samber/mo"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type Dialog struct {
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// Reply is the body of every response.
type Reply struct {
	OK      bool       `json:"ok"`
	Dialogs []Dialog   `json:"dialogs"`
	Columns []string   `json:"columns,omitempty"`
	Rows    []sqlx.Row `json:"rows,omitempty"`
	Amount  string     `json:"amount,omitempty"`
}

func (r *Reply) Info(title, message string)  { r.add("info", title, message) }
func (r *Reply) Warn(title, message string)  { r.add("warning", title, message) }
func (r *Reply) Error(title, message string) { r.add("error", title, message) }
func (r *Reply) add(severity, title, message string) {
	r.Dialogs = append(r.Dialogs, Dialog{Severity: severity, Title: title, Message: message})
}

func (r *Reply) Clear() { r.Rows = r.Rows[:0] }

func (r *Reply) Append(row sqlx.Row) { r.Rows = append(r.Rows, row) }

// actionFunc runs one action with the bound request values.
type actionFunc func(ctx context.Context, d *dispatch.Dispatcher, v form.Values, out *Reply) error

type Server struct {
	d      *dispatch.Dispatcher
	logger *zap.Logger
	engine *gin.Engine
	// one action, and so one open session, at a time
	mu sync.Mutex
}

func New(d *dispatch.Dispatcher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{d: d, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.accessLog)
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("http server listening", zap.String("addr", addr))
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("dur", time.Since(start)))
}

// handle binds the listed body fields and path params and runs fn as routine r.
func (s *Server) handle(r sqlx.Routine, fields []string, fn actionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		out := &Reply{Dialogs: []Dialog{}}
		d := s.d.With(out)
		var err error
		if v := values(c, fields); v.IsError() {
			err = d.Reject(r, v.Error())
		} else {
			err = fn(c.Request.Context(), d, v.MustGet(), out)
		}
		out.OK = err == nil
		c.JSON(status(err), out)
	}
}

// values reads the named fields out of a JSON body, then the path params over them.
func values(c *gin.Context, fields []string) mo.Result[form.Values] {
	v := form.Values{}
	if len(fields) > 0 {
		bts := mo.TupleToResult[[]byte](io.ReadAll(c.Request.Body))
		if bts.IsError() {
			return mo.Err[form.Values](bts.Error())
		}
		body := strings.TrimSpace(string(bts.MustGet()))
		if body == "" {
			body = "{}"
		}
		if !gjson.Valid(body) {
			return mo.Err[form.Values](errors.New("invalid JSON body"))
		}
		for _, f := range fields {
			if res := gjson.Get(body, f); res.Exists() {
				v[f] = res.String()
			}
		}
	}
	for _, p := range c.Params {
		v[p.Key] = p.Value
	}
	return mo.Ok(v)
}

func status(err error) int {
	var ce *sqlx.ConnectionError
	var pe *sqlx.ProcedureError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ce):
		return http.StatusBadGateway
	case errors.As(err, &pe):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
