package birds

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TimestampLayout: ISO-8601 en UTC con milisegundos fijos (2019-05-09T11:07:58.188Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp serializa time.Time con TimestampLayout.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp(time.Time{})
		return nil
	}
	s := strings.Trim(string(b), `"`)
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", s, err)
	}
	*t = Timestamp(parsed)
	return nil
}

type birdResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

type envelopeResponse struct {
	Birds    []birdResponse `json:"birds"`
	Messages []string       `json:"messages"`
}

func toBirdResponse(b Bird) birdResponse {
	return birdResponse{
		ID:        b.ID,
		Name:      b.Name,
		Species:   b.Species,
		CreatedAt: Timestamp(b.CreatedAt),
		UpdatedAt: Timestamp(b.UpdatedAt),
	}
}

func fromBirdResponse(r birdResponse) Bird {
	return Bird{
		ID:        r.ID,
		Name:      r.Name,
		Species:   r.Species,
		CreatedAt: time.Time(r.CreatedAt),
		UpdatedAt: time.Time(r.UpdatedAt),
	}
}

// Payload arma el valor de respuesta: array plano o envelope con messages.
// Nunca devuelve un slice nil (store vacío => [] en el JSON).
func Payload(items []Bird, envelope bool) any {
	out := make([]birdResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBirdResponse(b))
	}
	if !envelope {
		return out
	}

	msgs := make([]string, len(DefaultMessages))
	copy(msgs, DefaultMessages)
	return envelopeResponse{Birds: out, Messages: msgs}
}

// Serializer escribe el payload en el body. Se inyecta en el handler.
type Serializer interface {
	ContentType() string
	Write(w io.Writer, items []Bird, envelope bool) error
}

type JSONSerializer struct{}

func (JSONSerializer) ContentType() string { return "application/json" }

func (JSONSerializer) Write(w io.Writer, items []Bird, envelope bool) error {
	return json.NewEncoder(w).Encode(Payload(items, envelope))
}

// PlainSerializer es el equivalente a render plain: una línea por bird.
type PlainSerializer struct{}

func (PlainSerializer) ContentType() string { return "text/plain; charset=utf-8" }

func (PlainSerializer) Write(w io.Writer, items []Bird, envelope bool) error {
	var sb strings.Builder
	for _, b := range items {
		fmt.Fprintf(&sb, "%d %s (%s)\n", b.ID, b.Name, b.Species)
	}
	if envelope {
		for _, m := range DefaultMessages {
			sb.WriteString(m)
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// DecodeBirds parsea cualquiera de las dos formas JSON (array o envelope).
// Lo usan los tests y clientes que consumen /birds.
func DecodeBirds(body []byte) ([]Bird, []string, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var env envelopeResponse
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, nil, err
		}
		out := make([]Bird, 0, len(env.Birds))
		for _, r := range env.Birds {
			out = append(out, fromBirdResponse(r))
		}
		return out, env.Messages, nil
	}

	var arr []birdResponse
	if err := json.Unmarshal(body, &arr); err != nil {
		return nil, nil, err
	}
	out := make([]Bird, 0, len(arr))
	for _, r := range arr {
		out = append(out, fromBirdResponse(r))
	}
	return out, nil, nil
}
