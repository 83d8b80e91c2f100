package birds

import (
	"bytes"
	"net/http"

	"birds-api/internal/middleware"
	"birds-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	// Envelope: {"birds":[...],"messages":[...]} en vez de array plano.
	Envelope bool

	// Serializer por defecto JSONSerializer.
	Serializer Serializer

	Logger logger.Logger

	// Observe es opcional; recibe la cantidad de birds servidos por request.
	Observe func(count int)
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	r.Get("/birds", listBirdsHandler(svc, opts))
}

// listBirdsHandler godoc
// @Summary      List birds
// @Description  Devuelve todos los birds en orden de id. Forma fija por deploy:
// @Description  array plano (default) o envelopeResponse si BIRDS_ENVELOPE=true.
// @Produce      json
// @Produce      plain
// @Success      200  {array}  birdResponse  "array plano"
// @Success      200  {object} envelopeResponse  "modo envelope"
// @Failure      500  {string} string "internal error"
// @Router       /birds [get]
func listBirdsHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	ser := opts.Serializer
	if ser == nil {
		ser = JSONSerializer{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list birds failed", map[string]any{
				"request_id": middleware.GetRequestID(r.Context()),
				"error":      err.Error(),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Serializamos a buffer primero: si falla, todavía podemos responder 500.
		var buf bytes.Buffer
		if err := ser.Write(&buf, items, opts.Envelope); err != nil {
			log.Error("serialize birds failed", map[string]any{
				"request_id": middleware.GetRequestID(r.Context()),
				"error":      err.Error(),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if opts.Observe != nil {
			opts.Observe(len(items))
		}

		w.Header().Set("Content-Type", ser.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}
