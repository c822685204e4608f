package backend

import (
	"os"

	"github.com/b0bbywan/go-spotify-dbus/config"
)

const UNKNOWN = "unknown"

type ServerInfo struct {
	Hostname   string     `json:"hostname"`
	APISW      string     `json:"api_sw"`
	APIVersion string     `json:"api_version"`
	Player     PlayerInfo `json:"player"`
	Zeroconf   bool       `json:"zeroconf"`
}

type PlayerInfo struct {
	BusName   string `json:"bus_name"`
	Connected bool   `json:"connected"`
}

func (b *Backend) GetServerInfo() *ServerInfo {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = UNKNOWN
	}

	info := &ServerInfo{
		Hostname:   hostname,
		APISW:      config.AppName,
		APIVersion: config.AppVersion,
		Zeroconf:   b.Zeroconf != nil,
	}
	if b.Player != nil {
		info.Player = PlayerInfo{
			BusName:   b.Player.BusName(),
			Connected: b.Player.Connected(),
		}
	}
	return info
}
