package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/zmb3/spotify"

	"github.com/b0bbywan/go-spotify-dbus/backend/player"
	"github.com/b0bbywan/go-spotify-dbus/logger"
)

// Player is what the routes need from the player client.
type Player interface {
	BusName() string
	State() player.State
	MetadataUpdatedAt() time.Time

	GetProperty(name string) (dbus.Variant, error)
	SetProperty(name string, value interface{}) error
	RefreshMetadata() (player.Metadata, error)

	GetInfo(key string) (interface{}, error)
	GetTrackID() (string, error)
	GetCurrentTrack() (player.TrackSnapshot, error)
	GetFullTrack() (spotify.FullTrack, error)

	PlayPause() error
	Next() error
	Previous() error
	Stop() error
	Pause() error
	Play() error
	Seek(offset int64) error
	Open(uri string) error
}

type statusResponse struct {
	BusName   string     `json:"bus_name"`
	State     string     `json:"state"`
	Connected bool       `json:"connected"`
	UpdatedAt *time.Time `json:"metadata_updated_at,omitempty"`
}

type valueResponse struct {
	Name  string      `json:"name,omitempty"`
	Key   string      `json:"key,omitempty"`
	Value interface{} `json:"value"`
}

func StatusHandler(p Player) http.HandlerFunc {
	return JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
		state := p.State()
		resp := statusResponse{
			BusName:   p.BusName(),
			State:     state.String(),
			Connected: state == player.Connected,
		}
		if updated := p.MetadataUpdatedAt(); !updated.IsZero() {
			resp.UpdatedAt = &updated
		}
		return resp, nil
	})
}

func TrackIDHandler(p Player) http.HandlerFunc {
	return JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := p.GetTrackID()
		if err != nil {
			return nil, err
		}
		return map[string]string{"id": id}, nil
	})
}

// MetadataHandler returns a single field; an absent one has a null value.
func MetadataHandler(p Player) http.HandlerFunc {
	return JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
		key := r.PathValue("key")
		if key == "" {
			return nil, &player.ValidationError{Field: "key", Message: "cannot be empty"}
		}
		value, err := p.GetInfo(key)
		if err != nil {
			return nil, err
		}
		return valueResponse{Key: key, Value: player.Plain(value)}, nil
	})
}

func RefreshHandler(p Player) http.HandlerFunc {
	return JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
		md, err := p.RefreshMetadata()
		if err != nil {
			return nil, err
		}
		return md.Values(), nil
	})
}

func GetPropertyHandler(p Player) http.HandlerFunc {
	return JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
		name := r.PathValue("name")
		v, err := p.GetProperty(name)
		if err != nil {
			return nil, err
		}
		return valueResponse{Name: name, Value: player.Plain(v)}, nil
	})
}

func SetPropertyHandler(p Player) http.HandlerFunc {
	return withBody(
		func(req *player.PropertyRequest) error {
			if req.Value == nil {
				return &player.ValidationError{Field: "value", Message: "is required"}
			}
			return nil
		},
		func(w http.ResponseWriter, r *http.Request, req *player.PropertyRequest) {
			handlePlayerError(w, p.SetProperty(r.PathValue("name"), req.Value))
		},
	)
}

func SeekHandler(p Player) http.HandlerFunc {
	return withBody(nil, func(w http.ResponseWriter, r *http.Request, req *player.SeekRequest) {
		handlePlayerError(w, p.Seek(req.Offset))
	})
}

func OpenHandler(p Player) http.HandlerFunc {
	return withBody(
		func(req *player.OpenRequest) error {
			if req.URI == "" {
				return &player.ValidationError{Field: "uri", Message: "cannot be empty"}
			}
			return nil
		},
		func(w http.ResponseWriter, r *http.Request, req *player.OpenRequest) {
			handlePlayerError(w, p.Open(req.URI))
		},
	)
}

// withAction runs a body-less control call.
func withAction(action func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlePlayerError(w, action())
	}
}

// withBody decodes and validates the JSON body, then calls next
func withBody[T any](
	validate func(*T) error,
	next func(w http.ResponseWriter, r *http.Request, req *T),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req T
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON payload", http.StatusBadRequest)
			return
		}

		if validate != nil {
			if err := validate(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		next(w, r, &req)
	}
}

// handlePlayerError answers 202 on success, or the status matching err.
func handlePlayerError(w http.ResponseWriter, err error) {
	if err == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	http.Error(w, err.Error(), statusFor(err))
}

func statusFor(err error) int {
	var notConnected *player.NotConnectedError
	if errors.As(err, &notConnected) {
		return http.StatusServiceUnavailable
	}

	var unknownMethod *player.UnknownMethodError
	var validation *player.ValidationError
	var invalidBusName *player.InvalidBusNameError
	if errors.As(err, &unknownMethod) || errors.As(err, &validation) || errors.As(err, &invalidBusName) {
		return http.StatusBadRequest
	}

	var missing *player.MissingFieldError
	if errors.As(err, &missing) {
		return http.StatusNotFound
	}

	var remote *player.RemoteCallError
	if errors.As(err, &remote) {
		logger.Warn("[api] %v", err)
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
