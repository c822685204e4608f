package api

import (
	"net/http"

	"github.com/b0bbywan/go-spotify-dbus/backend"
)

func (s *Server) registerServerRoutes(b *backend.Backend) {
	s.mux.HandleFunc(
		"GET /server",
		JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
			return b.GetServerInfo(), nil
		}),
	)
}

func (s *Server) registerPlayerRoutes(p Player) {
	s.mux.HandleFunc(
		"GET /player",
		StatusHandler(p),
	)

	// current track
	s.mux.HandleFunc(
		"GET /player/track",
		JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
			return p.GetCurrentTrack()
		}),
	)
	s.mux.HandleFunc(
		"GET /player/track/full",
		JSONHandler(func(w http.ResponseWriter, r *http.Request) (any, error) {
			return p.GetFullTrack()
		}),
	)
	s.mux.HandleFunc(
		"GET /player/track/id",
		TrackIDHandler(p),
	)

	// metadata snapshot
	s.mux.HandleFunc(
		"GET /player/metadata/{key...}",
		MetadataHandler(p),
	)
	s.mux.HandleFunc(
		"POST /player/metadata/refresh",
		RefreshHandler(p),
	)

	// properties
	s.mux.HandleFunc(
		"GET /player/properties/{name}",
		GetPropertyHandler(p),
	)
	s.mux.HandleFunc(
		"POST /player/properties/{name}",
		SetPropertyHandler(p),
	)

	// playback control
	s.mux.HandleFunc(
		"POST /player/play",
		withAction(p.Play),
	)
	s.mux.HandleFunc(
		"POST /player/pause",
		withAction(p.Pause),
	)
	s.mux.HandleFunc(
		"POST /player/play_pause",
		withAction(p.PlayPause),
	)
	s.mux.HandleFunc(
		"POST /player/stop",
		withAction(p.Stop),
	)
	s.mux.HandleFunc(
		"POST /player/next",
		withAction(p.Next),
	)
	s.mux.HandleFunc(
		"POST /player/previous",
		withAction(p.Previous),
	)
	s.mux.HandleFunc(
		"POST /player/seek",
		SeekHandler(p),
	)
	s.mux.HandleFunc(
		"POST /player/open",
		OpenHandler(p),
	)
}
