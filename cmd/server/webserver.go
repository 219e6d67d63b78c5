package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/time/rate"

	mandel "github.com/marben/mandel_data"
)

// generationServer serves datasets from provider over HTTP, JSON websocket
// messages and irpc. It is itself a DatasetProvider that enforces the
// server's point limit.
type generationServer struct {
	provider  mandel.DatasetProvider
	maxPoints int
	origins   []string

	// per websocket connection message rate
	msgRate  rate.Limit
	msgBurst int

	logger *slog.Logger
}

var _ mandel.DatasetProvider = (*generationServer)(nil)

func (s *generationServer) routes(irpcListener *wsListener) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("/ws", s.handleWebsocket)
	mux.HandleFunc("/irpc", s.irpcHandler(irpcListener))
	return mux
}

// Generate enforces the point limit on top of the parameter invariants.
func (s *generationServer) Generate(ctx context.Context, p mandel.GenerationParameters) (mandel.Dataset, error) {
	if err := p.Validate(); err != nil {
		return mandel.Dataset{}, err
	}
	if p.Points() > s.maxPoints {
		return mandel.Dataset{}, fmt.Errorf("%w: %dx%d grid exceeds the limit of %d points",
			mandel.ErrInvalidParameter, p.Width, p.Height, s.maxPoints)
	}
	return s.provider.Generate(ctx, p)
}

func (s *generationServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleGenerate decodes parameters from the body. Missing fields take the
// defaults of the mandel command.
func (s *generationServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	p := mandel.DefaultParameters

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding parameters: %v", err))
		return
	}

	ds, err := s.Generate(r.Context(), p)
	if err != nil {
		s.logger.Warn("generation failed", "remote", r.RemoteAddr, "err", err)
		writeError(w, errorStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := mandel.WriteDataset(w, &ds, false); err != nil {
		s.logger.Warn("writing dataset", "remote", r.RemoteAddr, "err", err)
	}
}

// handleWebsocket answers every parameters message with a Response until
// the client closes the connection.
func (s *generationServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originHosts(s.origins),
	})
	if err != nil {
		s.logger.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer c.CloseNow()

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("got websocket connection")

	ctx := r.Context()
	limiter := rate.NewLimiter(s.msgRate, max(s.msgBurst, 1))

	for {
		p := mandel.DefaultParameters
		if err := wsjson.Read(ctx, c, &p); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				logger.Info("websocket closed")
			default:
				logger.Warn("websocket read", "err", err)
			}
			return
		}

		if s.msgRate > 0 {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		var resp mandel.Response
		ds, err := s.Generate(ctx, p)
		if err != nil {
			logger.Warn("generation failed", "err", err)
			resp.Error = err.Error()
			resp.Invalid = errors.Is(err, mandel.ErrInvalidParameter)
		} else {
			resp.Dataset = &ds
		}

		if err := wsjson.Write(ctx, c, resp); err != nil {
			logger.Warn("websocket write", "err", err)
			return
		}
	}
}

// irpcHandler upgrades the request and passes the websocket to the irpc
// server listening on l.
func (s *generationServer) irpcHandler(l *wsListener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originHosts(s.origins),
		})
		if err != nil {
			s.logger.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
			return
		}

		if err := l.push(c); err != nil {
			c.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

func errorStatus(err error) int {
	if errors.Is(err, mandel.ErrInvalidParameter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(mandel.Response{Error: msg, Invalid: status == http.StatusBadRequest})
}

// originHosts turns CORS style origins ("https://example.org") into the host
// patterns websocket.Accept matches against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, o)
	}
	return hosts
}
