package player

import "time"

const (
	// MPRIS D-Bus constants
	MPRIS_PREFIX       = "org.mpris.MediaPlayer2"
	MPRIS_PATH         = "/org/mpris/MediaPlayer2"
	MPRIS_PLAYER_IFACE = MPRIS_PREFIX + ".Player"

	METADATA_PROPERTY = "Metadata"

	DEFAULT_TARGET         = "spotify"
	DEFAULT_RETRY_INTERVAL = 10 * time.Second

	metadataCacheKey = "metadata"
)

// Well-known metadata keys
const (
	KEY_TRACK_ID = "mpris:trackid"
	KEY_ART_URL  = "mpris:artUrl"
	KEY_LENGTH   = "mpris:length"
	KEY_TITLE    = "xesam:title"
	KEY_ARTIST   = "xesam:artist"
	KEY_ALBUM    = "xesam:album"
)

// Method is a member of the MPRIS player interface the client knows how to call.
type Method string

const (
	MethodPlayPause   Method = "PlayPause"
	MethodNext        Method = "Next"
	MethodPrevious    Method = "Previous"
	MethodStop        Method = "Stop"
	MethodPause       Method = "Pause"
	MethodPlay        Method = "Play"
	MethodSeek        Method = "Seek"
	MethodOpenURI     Method = "OpenUri"
	MethodSetPosition Method = "SetPosition"
)

// methodSignatures maps every supported method to the D-Bus signature of its
// input arguments.
var methodSignatures = map[Method]string{
	MethodPlayPause:   "",
	MethodNext:        "",
	MethodPrevious:    "",
	MethodStop:        "",
	MethodPause:       "",
	MethodPlay:        "",
	MethodSeek:        "x",
	MethodOpenURI:     "s",
	MethodSetPosition: "ox",
}

const (
	Disconnected State = iota
	Connected
)
